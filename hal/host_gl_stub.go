//go:build !cgo

package hal

// NewGL returns a HAL whose CreateWindow always fails: GLFW needs cgo.
func NewGL(_ GLConfig, logger Logger) HAL {
	if logger == nil {
		logger = Discard
	}
	return noCgoHAL{logger: logger}
}

type noCgoHAL struct {
	logger Logger
}

func (h noCgoHAL) Logger() Logger       { return h.logger }
func (h noCgoHAL) Windowing() Windowing { return h }
func (h noCgoHAL) Context() Context     { return nil }
func (h noCgoHAL) Pipeline() Pipeline   { return nil }
func (h noCgoHAL) Buffers() Buffers     { return nil }

func (noCgoHAL) CreateWindow(int, int, string) (Window, error) { return nil, ErrNoCgo }
func (noCgoHAL) PollEvents()                                   {}
func (noCgoHAL) Terminate()                                    {}
