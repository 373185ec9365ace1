// Package download implements the batch pipeline on top of the yt-dlp CLI:
// it builds argument lists, runs one yt-dlp process per URL with merged
// output, parses progress lines and reports events for a batch processed
// strictly in order on a single background goroutine.
package download
