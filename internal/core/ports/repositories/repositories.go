// Package repositories defines the persistence port interfaces consumed by
// the service layer. Each entity gets a Reader/Writer split plus a Facade
// combining the two, so read-only consumers can depend on the narrow side.
package repositories
