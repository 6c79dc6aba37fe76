// Package container provides small generic collections: an insertion-ordered
// Dictionary, a linked-list Queue and a linked-list PriorityQueue.
//
// None of the types are safe for concurrent use. Lookups on an empty or
// missing entry return the zero value and false rather than an error.
package container
