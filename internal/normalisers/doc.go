// Package normalisers holds the document partitioners. Each one turns a
// file of a given format into ordered domain elements.
package normalisers
