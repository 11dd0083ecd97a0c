package interaction

import "sync"

// CommitFunc receives the final value of a gesture.
type CommitFunc func(Result)

// Tracker runs at most one gesture at a time against an EventTarget.
type Tracker struct {
	target *EventTarget

	mu      sync.Mutex
	active  Gesture
	commit  CommitFunc
	release []func()
}

// NewTracker creates a tracker bound to target.
func NewTracker(target *EventTarget) *Tracker {
	return &Tracker{target: target}
}

// Begin starts g. Move, release and blur listeners are registered on the
// page-wide target until the gesture ends. A gesture already in progress is
// interrupted first, committing its last value.
func (tr *Tracker) Begin(g Gesture, commit CommitFunc) {
	tr.Interrupt()

	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.active = g
	tr.commit = commit
	tr.release = []func(){
		tr.target.AddListener(EventPointerMove, func(ev Event) {
			tr.mu.Lock()
			defer tr.mu.Unlock()
			if tr.active == g {
				g.Move(ev.Point)
			}
		}),
		tr.target.AddListener(EventPointerUp, func(Event) { tr.finish(g, true) }),
		tr.target.AddListener(EventBlur, func(Event) { tr.finish(g, true) }),
	}
}

// Active returns the gesture in progress, or nil.
func (tr *Tracker) Active() Gesture {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return tr.active
}

// Interrupt ends the current gesture and commits its last computed value.
func (tr *Tracker) Interrupt() {
	tr.finish(nil, true)
}

// Teardown ends the current gesture without committing.
func (tr *Tracker) Teardown() {
	tr.finish(nil, false)
}

// finish ends g (or whatever is active when g is nil). The commit runs
// after the tracker lock is released so it may start a new gesture.
func (tr *Tracker) finish(g Gesture, commit bool) {
	tr.mu.Lock()
	if tr.active == nil || (g != nil && tr.active != g) {
		tr.mu.Unlock()
		return
	}
	ended := tr.active
	fn := tr.commit
	release := tr.release
	tr.active, tr.commit, tr.release = nil, nil, nil
	tr.mu.Unlock()

	for _, r := range release {
		r()
	}
	if commit && fn != nil {
		fn(ended.Result())
	}
}
