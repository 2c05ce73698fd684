// Package audio extracts recognizer-ready PCM audio from video files.
package audio
