// Package concat provides the concatenation source type: an ordered list of heterogeneous
// sub-sources presented as one logical record stream. Sub-readers are constructed lazily,
// one at a time, through a ReaderRegistry, so a concatenation never pays for opening a
// sub-source it does not reach.
package concat
