/*
Package session serializes concurrent access to applications.

Two caseworkers (or two tabs) posting pages of the same application at the
same time would otherwise race the engine's read-modify-write cycle against
the store. The Manager takes a per-artifact lock for the duration of each
operation, locally via reference-counted mutexes and, when configured with a
DistributedLocker, across replicas too.
*/
package session
