package notifier

// Gate suppresses a message identical to the last one recorded.
// The zero value is ready to use and has recorded nothing.
type Gate struct {
	last string
	set  bool
}

// ShouldSend reports whether candidate differs from the last recorded message.
func (g *Gate) ShouldSend(candidate string) bool {
	return !g.set || candidate != g.last
}

// RecordSent overwrites the remembered message. Call it after every send
// attempt, successful or not.
func (g *Gate) RecordSent(candidate string) {
	g.last = candidate
	g.set = true
}

// Reset forgets the remembered message.
func (g *Gate) Reset() {
	g.last = ""
	g.set = false
}

// Last returns the remembered message, if any.
func (g *Gate) Last() (string, bool) { return g.last, g.set }
