package identifiable

// Observer is notified about assignment attempts. Implementations must be
// safe for concurrent use.
type Observer interface {
	Attempt(table string)
	Collision(table string)
	Assigned(table string, attempts int)
	Exhausted(table string)
}

type nopObserver struct{}

func (nopObserver) Attempt(string)       {}
func (nopObserver) Collision(string)     {}
func (nopObserver) Assigned(string, int) {}
func (nopObserver) Exhausted(string)     {}
