// Package core defines the shared vocabulary of the supervisor orchestration
// engine: the tagged message union exchanged between agents, agent
// descriptors with their opaque step handles, the per-invocation
// ConversationState owned by the runtime, handoff audit records and the
// typed error taxonomy.
//
// Nothing in this package performs orchestration; it only provides immutable
// building blocks safe to share across concurrent invocations.
package core
