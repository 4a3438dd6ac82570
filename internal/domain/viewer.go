package domain

// ViewerKind enumerates who is looking at the catalog.
type ViewerKind int

const (
	KindAnonymous ViewerKind = iota
	KindCustomer
	KindReseller
)

func (k ViewerKind) String() string {
	switch k {
	case KindCustomer:
		return "customer"
	case KindReseller:
		return "reseller"
	default:
		return "anonymous"
	}
}

// Viewer is the per-request identity used for price resolution. The zero
// value is an anonymous viewer. Construct with Anonymous, Customer or
// ResellerViewer; Verified is only meaningful for resellers.
type Viewer struct {
	Kind     ViewerKind
	UserID   string
	Verified bool
}

func Anonymous() Viewer { return Viewer{} }

func Customer(userID string) Viewer {
	return Viewer{Kind: KindCustomer, UserID: userID}
}

func ResellerViewer(userID string, verified bool) Viewer {
	return Viewer{Kind: KindReseller, UserID: userID, Verified: verified}
}

func (v Viewer) IsAnonymous() bool { return v.Kind == KindAnonymous || v.UserID == "" }

// IsVerifiedReseller is the only condition under which wholesale pricing applies.
func (v Viewer) IsVerifiedReseller() bool {
	return v.Kind == KindReseller && v.Verified
}
