package diff

// Op classifies a change event.
type Op int

const (
	// OpAddNamespace reports a namespace present only on the local side.
	OpAddNamespace Op = iota

	// OpDeleteNamespace reports a namespace present only on the cluster side.
	OpDeleteNamespace

	// OpAddRecord reports a record present only on the local side of a
	// namespace both sides share.
	OpAddRecord

	// OpDeleteRecord reports a record present only on the cluster side of a
	// namespace both sides share.
	OpDeleteRecord

	// OpChangeRecord reports a record present on both sides with differing
	// bodies.
	OpChangeRecord
)

// IsNamespace reports whether the operation concerns a whole namespace
// rather than a single record.
func (o Op) IsNamespace() bool {
	return o == OpAddNamespace || o == OpDeleteNamespace
}

// Event is one classified difference between the cluster side and the local
// side. Namespace events carry an empty Kind and Name.
type Event struct {
	Op        Op
	Namespace string
	Kind      string
	Name      string
}

// String renders the subject of the event, "Namespace <ns>" for namespace
// events and "<Kind> <ns>/<name>" for record events.
func (e Event) String() string {
	if e.Op.IsNamespace() {
		return "Namespace " + e.Namespace
	}

	return e.Kind + " " + e.Namespace + "/" + e.Name
}
