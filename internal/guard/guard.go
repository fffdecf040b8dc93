// Package guard implements ownership-based authorization for resources
// that carry an owning user. Reads need no check here: public resources
// are readable by anyone, and private ones are scoped to the caller in
// the repository queries. Writes are permitted only for the owner; the
// check is a pure predicate applied before any mutating operation
// commits.
package guard

// Owned is satisfied by any resource with an owning user.
type Owned interface {
	OwnerID() int64
}

// CanModify reports whether userID may mutate or delete the resource.
func CanModify(userID int64, resource Owned) bool {
	return resource.OwnerID() == userID
}
