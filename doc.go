// Package quotecard renders shareable square testimonial cards.
//
// A card is described by a Testimonial and a DesignConfig. A layout composer
// (classic, modern or minimal) turns them into a LayoutSpec, a plain list of
// elements, and a Renderer draws that list onto a Surface. The Dispatcher
// owns the surface, re-runs the pass when the input changes and keeps the
// latest frame; an Exporter names frames and hands them to a Saver.
//
// See the Version variable for the current library version.
package quotecard
