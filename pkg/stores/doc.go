// Package stores persists OrgForge run history in SQLite.
//
// Every batch run is recorded as a RunRecord: the target instance host, the
// failure policy, the final status, and the applied/failed entry lists. The
// access token is never written to the store. Migrations are embedded and
// applied on startup.
package stores
