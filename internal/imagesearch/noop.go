package imagesearch

import "context"

// NoopEngine encodes "image integration disabled": it always returns no
// candidates and no error, so the assembler needs no configuration branches.
type NoopEngine struct{}

func NewNoopEngine(EngineConfig) (Engine, error) {
	return NoopEngine{}, nil
}

func (NoopEngine) Name() string { return "noop" }

func (NoopEngine) Search(context.Context, string, int) ([]Candidate, error) {
	return nil, nil
}
