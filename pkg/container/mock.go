package container

import "context"

// MockDriver is a function-field mock of Driver for testing, mirroring the
// teacher's pkg/runtime.MockRuntime pattern extended to all five calls.
type MockDriver struct {
	CreateFunc func(ctx context.Context, spec Spec) (Handle, error)
	StartFunc  func(ctx context.Context, h Handle) error
	ExecFunc   func(ctx context.Context, h Handle, cmd ExecCommand) (ExecResult, error)
	KillFunc   func(ctx context.Context, h Handle) error
	RemoveFunc func(ctx context.Context, h Handle) error

	// Calls records executed commands in order, for assertions.
	Calls []string
}

func (m *MockDriver) Create(ctx context.Context, spec Spec) (Handle, error) {
	m.Calls = append(m.Calls, "create")
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, spec)
	}
	return Handle{ID: "mock-container"}, nil
}

func (m *MockDriver) Start(ctx context.Context, h Handle) error {
	m.Calls = append(m.Calls, "start")
	if m.StartFunc != nil {
		return m.StartFunc(ctx, h)
	}
	return nil
}

func (m *MockDriver) Exec(ctx context.Context, h Handle, cmd ExecCommand) (ExecResult, error) {
	m.Calls = append(m.Calls, "exec")
	if m.ExecFunc != nil {
		return m.ExecFunc(ctx, h, cmd)
	}
	return ExecResult{ExitCode: 0}, nil
}

func (m *MockDriver) Kill(ctx context.Context, h Handle) error {
	m.Calls = append(m.Calls, "kill")
	if m.KillFunc != nil {
		return m.KillFunc(ctx, h)
	}
	return nil
}

func (m *MockDriver) Remove(ctx context.Context, h Handle) error {
	m.Calls = append(m.Calls, "remove")
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, h)
	}
	return nil
}

// Ensure MockDriver implements Driver.
var _ Driver = (*MockDriver)(nil)
