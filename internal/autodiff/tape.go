package autodiff

type op struct {
	name     string
	backward func()
}

// Tape is an append-only list of backward closures. It is not safe for
// concurrent use.
type Tape struct {
	ops       []op
	recording bool
}

// NewTape returns a tape that is recording.
func NewTape() *Tape {
	return &Tape{recording: true}
}

// Record appends backward if the tape is recording.
func (t *Tape) Record(name string, backward func()) {
	if !t.recording {
		return
	}
	t.ops = append(t.ops, op{name: name, backward: backward})
}

// Backward runs every recorded closure in reverse order of recording.
// Recording is paused while it runs.
func (t *Tape) Backward() {
	was := t.recording
	t.recording = false
	defer func() { t.recording = was }()

	for i := len(t.ops) - 1; i >= 0; i-- {
		t.ops[i].backward()
	}
}

// Reset drops all recorded operations and keeps the recording state.
func (t *Tape) Reset() {
	t.ops = t.ops[:0]
}

func (t *Tape) Len() int { return len(t.ops) }

func (t *Tape) StartRecording()   { t.recording = true }
func (t *Tape) StopRecording()    { t.recording = false }
func (t *Tape) IsRecording() bool { return t.recording }

// Ops returns the recorded operation names in forward order.
func (t *Tape) Ops() []string {
	names := make([]string, len(t.ops))
	for i, o := range t.ops {
		names[i] = o.name
	}
	return names
}
