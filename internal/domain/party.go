package domain

// ContractParty is one side of a bilateral contract. Signature is set once per
// lifecycle cycle; an empty signature means the party has not signed.
type ContractParty struct {
	Name         string
	Email        string
	Organization string
	Address      string
	Signature    string
}

// Signed reports whether the party has a signature on file.
func (p ContractParty) Signed() bool {
	return p.Signature != ""
}

// Actor identifies who is performing an operation: the authorization role and
// the display name stamped into history entries. Identity is established by
// the caller; this package only authorizes on the role.
type Actor struct {
	Role PartyRole
	Name string
}
