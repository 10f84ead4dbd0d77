package payout

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const (
	// srvService is the SRV service label for marketplace payout endpoints:
	// _cmg._tcp.{domain}.
	srvService = "cmg"

	// txtAddrPrefix marks the payment address entry in a handle's TXT record.
	txtAddrPrefix = "addr="

	// resolveTimeout is the per-query DNS timeout.
	resolveTimeout = 10 * time.Second

	// edns0BufSize is the EDNS0 UDP buffer size.
	edns0BufSize = 4096
)

// Exchanger performs a single DNS exchange. Satisfied by *dns.Client bound
// to an upstream; tests substitute a fake.
type Exchanger interface {
	Exchange(msg *dns.Msg, addr string) (*dns.Msg, time.Duration, error)
}

// HandleResolver resolves alias@domain payout handles to payment addresses.
//
// Resolution is two-step: an SRV lookup of _cmg._tcp.{domain} confirms the
// domain hosts a payout endpoint, then a TXT lookup of {alias}._cmg.{domain}
// yields an "addr=..." entry with the payment address. Queries carry the
// DNSSEC OK flag so validating upstreams can serve authenticated data.
type HandleResolver struct {
	// Upstream is the recursive resolver address (e.g., "8.8.8.8:53").
	Upstream string

	// Client performs the DNS exchange. Defaults to a UDP dns.Client.
	Client Exchanger
}

// NewHandleResolver creates a resolver using the given upstream.
func NewHandleResolver(upstream string) *HandleResolver {
	return &HandleResolver{
		Upstream: upstream,
		Client:   &dns.Client{Timeout: resolveTimeout},
	}
}

// Resolve maps an alias@domain handle to a payment address.
func (r *HandleResolver) Resolve(ctx context.Context, handle string) (string, error) {
	alias, domain, found := strings.Cut(handle, "@")
	if !found || alias == "" || domain == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidHandle, handle)
	}

	if _, err := r.lookupSRV(domain); err != nil {
		return "", err
	}
	return r.lookupAddr(alias, domain)
}

// lookupSRV queries _cmg._tcp.{domain} and returns endpoints sorted by
// priority (ascending) then weight (descending).
func (r *HandleResolver) lookupSRV(domain string) ([]string, error) {
	name := fmt.Sprintf("_%s._tcp.%s", srvService, domain)
	resp, err := r.query(name, dns.TypeSRV)
	if err != nil {
		return nil, err
	}

	var srvs []*dns.SRV
	for _, rr := range resp.Answer {
		if srv, ok := rr.(*dns.SRV); ok {
			srvs = append(srvs, srv)
		}
	}
	if len(srvs) == 0 {
		return nil, fmt.Errorf("%w: no SRV records for %s", ErrResolveFailed, name)
	}

	sort.Slice(srvs, func(i, j int) bool {
		if srvs[i].Priority != srvs[j].Priority {
			return srvs[i].Priority < srvs[j].Priority
		}
		return srvs[i].Weight > srvs[j].Weight
	})

	endpoints := make([]string, len(srvs))
	for i, srv := range srvs {
		endpoints[i] = fmt.Sprintf("%s:%d", strings.TrimSuffix(srv.Target, "."), srv.Port)
	}
	return endpoints, nil
}

// lookupAddr queries {alias}._cmg.{domain} TXT records for an addr= entry.
func (r *HandleResolver) lookupAddr(alias, domain string) (string, error) {
	name := fmt.Sprintf("%s._%s.%s", alias, srvService, domain)
	resp, err := r.query(name, dns.TypeTXT)
	if err != nil {
		return "", err
	}

	for _, rr := range resp.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}
		for _, s := range txt.Txt {
			if strings.HasPrefix(s, txtAddrPrefix) {
				addr := strings.TrimPrefix(s, txtAddrPrefix)
				if addr != "" {
					return addr, nil
				}
			}
		}
	}
	return "", fmt.Errorf("%w: no addr entry in TXT for %s", ErrResolveFailed, name)
}

// query sends a DNS query with the DNSSEC OK flag set.
func (r *HandleResolver) query(name string, qtype uint16) (*dns.Msg, error) {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), qtype)
	msg.RecursionDesired = true
	msg.SetEdns0(edns0BufSize, true)

	client := r.Client
	if client == nil {
		client = &dns.Client{Timeout: resolveTimeout}
	}
	resp, _, err := client.Exchange(msg, r.Upstream)
	if err != nil {
		return nil, fmt.Errorf("%w: query %s %s: %w",
			ErrResolveFailed, name, dns.TypeToString[qtype], err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return nil, fmt.Errorf("%w: query %s %s: rcode %s",
			ErrResolveFailed, name, dns.TypeToString[qtype], dns.RcodeToString[resp.Rcode])
	}
	return resp, nil
}
