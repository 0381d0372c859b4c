// Package blueprintedit provides the pure helpers the Workspace Coordinator
// uses to translate a detailed change targeting an ElemID into a spliced
// blueprint buffer, using the element's recorded source ranges to find
// where in the buffer to cut.
package blueprintedit
