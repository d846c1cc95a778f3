package domain

// PlanKind tells which delivery shape the routing engine chose.
type PlanKind int

const (
	PlanDrop PlanKind = iota
	PlanBroadcast
	PlanDirected
)

func (k PlanKind) String() string {
	switch k {
	case PlanBroadcast:
		return "broadcast"
	case PlanDirected:
		return "directed"
	default:
		return "drop"
	}
}

// RoutingPlan is the decision taken for a single inbound message.
// Recipients holds every Greeter for a broadcast, the active Evaluator for a
// directed send and nothing for a drop. Reason is only set on drops.
type RoutingPlan struct {
	Kind       PlanKind
	Recipients []string
	Body       string
	Reason     error
}

func Broadcast(recipients []string, body string) RoutingPlan {
	return RoutingPlan{Kind: PlanBroadcast, Recipients: recipients, Body: body}
}

func Directed(recipient, body string) RoutingPlan {
	return RoutingPlan{Kind: PlanDirected, Recipients: []string{recipient}, Body: body}
}

func Drop(reason error) RoutingPlan {
	return RoutingPlan{Kind: PlanDrop, Reason: reason}
}

func (p RoutingPlan) IsDrop() bool { return p.Kind == PlanDrop }
