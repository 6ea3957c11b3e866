// Package shell provides the imperative shell around the circulation core: conversion between
// domain events and storable events, event metadata, the retry loop for optimistic concurrency
// conflicts, handler results, and the observability helpers used by command and query handlers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
