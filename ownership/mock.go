package ownership

import "context"

// MockRegistry is a test double for Registry.
// All function fields must be set before the corresponding method is called.
type MockRegistry struct {
	MintFn                  func(ctx context.Context, owner, note string) (string, error)
	TransferUnconditionalFn func(ctx context.Context, tokenID, from, to string) error
	OwnerOfFn               func(ctx context.Context, tokenID string) (string, error)
}

func (m *MockRegistry) Mint(ctx context.Context, owner, note string) (string, error) {
	return m.MintFn(ctx, owner, note)
}

func (m *MockRegistry) TransferUnconditional(ctx context.Context, tokenID, from, to string) error {
	return m.TransferUnconditionalFn(ctx, tokenID, from, to)
}

func (m *MockRegistry) OwnerOf(ctx context.Context, tokenID string) (string, error) {
	return m.OwnerOfFn(ctx, tokenID)
}
