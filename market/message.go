package market

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmgorg/libcmg-go/content"
)

// Request is a parsed transfer-listener operation descriptor.
type Request interface {
	isRequest()
}

// BidRequest asks for a slot allocation on a content item.
type BidRequest struct {
	ID     content.Identity
	Points int
	Value  float64
}

func (BidRequest) isRequest() {}

// BuyRequest asks for a usage licence on a content item.
type BuyRequest struct {
	ID    content.Identity
	Price float64
}

func (BuyRequest) isRequest() {}

// ParseMessage decodes a colon-delimited operation message:
//
//	bid:<creatorId>:<contentId>:<timestamp>:<points>:<value>
//	buy:<creatorId>:<contentId>:<timestamp>:<price>
//
// A single trailing colon is tolerated; clients that join fields with a
// delimiter suffix are common in the wild.
func ParseMessage(msg string) (Request, error) {
	msg = strings.TrimSuffix(msg, ":")
	fields := strings.Split(msg, ":")

	switch fields[0] {
	case "bid":
		if len(fields) != 6 {
			return nil, fmt.Errorf("%w: bid wants 6 fields, got %d", ErrMalformedMessage, len(fields))
		}
		id, err := parseIdentity(fields[1], fields[2], fields[3])
		if err != nil {
			return nil, err
		}
		points, err := strconv.Atoi(fields[4])
		if err != nil {
			return nil, fmt.Errorf("%w: points %q", ErrMalformedMessage, fields[4])
		}
		value, err := strconv.ParseFloat(fields[5], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q", ErrMalformedMessage, fields[5])
		}
		return BidRequest{ID: id, Points: points, Value: value}, nil

	case "buy":
		if len(fields) != 5 {
			return nil, fmt.Errorf("%w: buy wants 5 fields, got %d", ErrMalformedMessage, len(fields))
		}
		id, err := parseIdentity(fields[1], fields[2], fields[3])
		if err != nil {
			return nil, err
		}
		price, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: price %q", ErrMalformedMessage, fields[4])
		}
		return BuyRequest{ID: id, Price: price}, nil

	default:
		return nil, fmt.Errorf("%w: unknown operation %q", ErrMalformedMessage, fields[0])
	}
}

func parseIdentity(creator, contentID, timestamp string) (content.Identity, error) {
	ts, err := strconv.ParseUint(timestamp, 10, 64)
	if err != nil {
		return content.Identity{}, fmt.Errorf("%w: timestamp %q", ErrMalformedMessage, timestamp)
	}
	id := content.Identity{Creator: creator, ContentID: contentID, Timestamp: ts}
	if !id.Valid() {
		return content.Identity{}, fmt.Errorf("%w: empty identity field", ErrMalformedMessage)
	}
	return id, nil
}
