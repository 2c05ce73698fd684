// Package timeline resolves playback times to active caption segments.
//
// Two strategies are provided: a stateful forward-scanning Cursor for the
// sequential render loop, and a stateless binary-search Lookup for
// parallel frame rendering against an immutable sorted list.
package timeline
