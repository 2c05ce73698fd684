// Command subburn transcribes speech in a video and burns the resulting
// captions into a new copy of the file.
package main
