/*
transition.go - Static status-transition tables

PURPOSE:
  One generic component replaces the per-domain copy-pasted transition
  checks. Each entity type declares its legal (from, to) status pairs once,
  as data; the table answers legality queries and produces the canonical
  error for illegal requests.

CONTRACT:
  - The table is a static, exhaustive enumeration of allowed edges.
  - Any pair not explicitly listed is illegal, including self-transitions.
  - Terminal statuses simply have no outgoing edges.

USAGE:
  var poTransitions = lifecycle.NewTable(map[Status][]Status{
      StatusDraft:           {StatusPendingApproval, StatusCancelled},
      StatusPendingApproval: {StatusApproved, StatusDraft, StatusCancelled},
  })

  if err := poTransitions.Check(po.Status, next); err != nil {
      return err // *lifecycle.TransitionError
  }

SEE ALSO:
  - errors.go: TransitionError
*/
package lifecycle

// Labeler is implemented by domain status enums so transition errors can
// name both statuses in human-readable form.
type Labeler interface {
	comparable
	Label() string
}

// Table holds the legal status edges for one entity type.
type Table[S Labeler] struct {
	edges map[S]map[S]struct{}
}

// NewTable builds a table from an adjacency map of from-status to the
// statuses reachable from it.
func NewTable[S Labeler](adjacency map[S][]S) Table[S] {
	edges := make(map[S]map[S]struct{}, len(adjacency))
	for from, tos := range adjacency {
		set := make(map[S]struct{}, len(tos))
		for _, to := range tos {
			set[to] = struct{}{}
		}
		edges[from] = set
	}
	return Table[S]{edges: edges}
}

// Allows reports whether from -> to is a legal edge.
func (t Table[S]) Allows(from, to S) bool {
	set, ok := t.edges[from]
	if !ok {
		return false
	}
	_, ok = set[to]
	return ok
}

// Check returns a TransitionError naming both statuses when from -> to is
// not a legal edge, nil otherwise.
func (t Table[S]) Check(from, to S) error {
	if t.Allows(from, to) {
		return nil
	}
	return &TransitionError{From: from.Label(), To: to.Label()}
}

// Targets returns the statuses reachable from the given status. Terminal
// statuses return an empty slice.
func (t Table[S]) Targets(from S) []S {
	set := t.edges[from]
	targets := make([]S, 0, len(set))
	for to := range set {
		targets = append(targets, to)
	}
	return targets
}

// IsTerminal reports whether the status has no outgoing edges.
func (t Table[S]) IsTerminal(s S) bool {
	return len(t.edges[s]) == 0
}
