// Package book assembles the generated part of the book: one page per
// example, the unit listing, one function-list page per topic document, and
// finally the static site build.
//
// A run is a fixed sequence of named stages executed in order. Each stage is
// timed and classified; the first fatal error aborts the run. Pages are
// written straight into the book source directory unless atomic mode is
// enabled, in which case they are staged in a sibling directory and only
// promoted once every generation stage succeeded.
package book
