// Package document edits PDF documents page by page.
//
// Mutator is the contract the annotation session observes: every
// structural edit produces a new document identity, and registered
// observers are told the new identity and page count so that overlays tied
// to the old page layout can be dropped. PDF implements Mutator on top of
// pdfcpu. Pages are 1-based throughout.
package document
