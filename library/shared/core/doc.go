// Package core contains the domain of library circulation: the domain events, the
// projections from event history that command decisions are based on (item circulation,
// hold queue, member account) and the lending policy.
//
// Everything in here is pure: no I/O, no clocks, no randomness. Command handlers in the
// feature packages feed it the relevant history and append what it decides.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
