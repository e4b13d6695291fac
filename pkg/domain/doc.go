package domain

// domain package contains the Domain Models and Interfaces for the trialkeep core.
//
// `domain/trialkeep` package exposes the root object of the core.
// Entrypoints should instantiate the Trialkeep object and use it to interact with the domain.
//
// `domain/CONCEPT.go` has the high-level entities (Domain Model types) and the
// pure decision functions over them. For example, `domain/resource.go` holds the
// `Resource` identity type; `domain/policy.go` holds the deletion-policy matrix.
//
// `domain/AREA` directories contain the physical representation of the domain
// in the RDB. For example, `domain/snapshot/db/postgres` is the PostgreSQL
// expression of the snapshot repository described in `domain/snapshot.go`.
//
// `domain/AREA/interface.go` exposes the client interface to handle that area.
//
// # Entities
//
// - `resource`: the permanent identity of a domain object. Resources carry
// locks (soft-delete, read-only), tags, cross-group shares, and parent/child
// dependency edges. A resource never changes after creation; its content
// history is a chain of snapshots.
//
// - `snapshot`: one immutable version of a resource's content. Editing a
// resource appends a snapshot; nothing is ever updated in place. Each
// resource type (queue, plugin, plugin file, entry point, experiment, job,
// ml model, artifact) is a snapshot subtype with its own columns.
//
// - `lock`: the append-only soft-delete / read-only log. A DELETE lock makes a
// resource and its snapshots invisible to default queries; a READONLY lock
// blocks new snapshots. Locks are never removed, preserving the audit trail.
//
// - `group`: principals. Users and groups mirror the resource lock pattern for
// deletion but are not themselves versioned.
//
// - `draft`: staged, per-user proposals for future resource content.
//
// - `schema`: versioned DDL management for the backing database.
