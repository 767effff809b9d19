package platform

// Recorder wraps a Service for dry runs: enumeration and reads go to the
// wrapped service, writes and the final apply are only recorded.
type Recorder struct {
	svc   Service
	calls []Call
}

var _ Service = (*Recorder)(nil)

// NewRecorder wraps svc.
func NewRecorder(svc Service) *Recorder {
	return &Recorder{svc: svc}
}

func (r *Recorder) EnumerateDevices() ([]Device, error) {
	return r.svc.EnumerateDevices()
}

func (r *Recorder) CurrentSettings(dev Device) (Settings, error) {
	return r.svc.CurrentSettings(dev)
}

func (r *Recorder) WriteSettings(dev Device, s Settings, flags WriteFlags) error {
	pos := s.Position
	r.calls = append(r.calls, Call{Op: "write", Device: dev.ID, Position: &pos, Flags: flags})
	return nil
}

func (r *Recorder) ApplyStaged() error {
	r.calls = append(r.calls, Call{Op: "apply"})
	return nil
}

// Calls returns the writes and apply that a real run would have issued.
func (r *Recorder) Calls() []Call {
	return append([]Call(nil), r.calls...)
}
