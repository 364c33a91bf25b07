package element

// Intent is pending structural edit requested on an element. It is realized
// on the markup by the builder on its next pass.
// ENUM(none, insert, insert-left, insert-right, delete, split, move-next, move-prev, move-up, move-down, paste)
type Intent int
