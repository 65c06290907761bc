package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/schollz/progressbar/v3"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/api/mixtapev1/mixtapev1connect"
	"github.com/osa030/mixtape/internal/domain/track"
)

// progressSteps is the progress bar resolution.
const progressSteps = 1000

func formatState(state string) string {
	switch state {
	case mixtapev1.PlaybackStatePlaying:
		return "▶  Playing"
	case mixtapev1.PlaybackStatePaused:
		return "⏸  Paused"
	default:
		return "■  Stopped"
	}
}

func formatMs(ms int64) string {
	return track.FormatDuration(time.Duration(ms) * time.Millisecond)
}

func currentTitle(st *mixtapev1.PlaylistState) string {
	if st.CurrentIndex < 0 || st.CurrentIndex >= len(st.Tracks) {
		return "Nothing selected"
	}
	t := st.Tracks[st.CurrentIndex]
	return fmt.Sprintf("%s - %s", t.Title, t.Artist)
}

func printState(st mixtapev1.PlaylistState) {
	fmt.Printf("%s: %s", formatState(st.State), currentTitle(&st))
	if st.State != mixtapev1.PlaybackStateStopped {
		fmt.Printf(" (%s / %s)", formatMs(st.ElapsedMs), formatMs(st.DurationMs))
	}
	fmt.Println()

	if len(st.Tracks) == 0 {
		fmt.Println("Your playlist is empty")
		return
	}
	for i, t := range st.Tracks {
		marker := "  "
		if i == st.CurrentIndex {
			marker = "♪ "
		}
		fmt.Printf("%s%2d. %s - %s (%s) [%s]\n", marker, i+1, t.Title, t.Artist, t.Duration, t.Album)
	}
}

func newProgressBar(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(progressSteps,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetElapsedTime(false),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
}

// watch follows the notification stream, drawing the current song's progress.
func watch(ctx context.Context, client *mixtapev1connect.PlaybackServiceClient) error {
	stream, err := client.Subscribe(ctx, connect.NewRequest(&mixtapev1.SubscribeRequest{}))
	if err != nil {
		return err
	}
	defer stream.Close()

	fmt.Println("Watching playback. Press Ctrl+C to exit.")

	var (
		bar   *progressbar.ProgressBar
		title string
	)
	for stream.Receive() {
		n := stream.Msg()
		if n.State != nil {
			if t := currentTitle(n.State); t != title || bar == nil {
				if bar != nil {
					_ = bar.Clear()
				}
				title = t
				fmt.Fprintf(os.Stderr, "\n%s: %s\n", formatState(n.State.State), title)
				bar = newProgressBar("")
			}
		}
		if bar == nil {
			continue
		}

		switch {
		case n.Progress != nil:
			_ = bar.Set64(int64(n.Progress.Fraction * progressSteps))
			bar.Describe(fmt.Sprintf("%s / %s", formatMs(n.Progress.ElapsedMs), formatMs(n.Progress.DurationMs)))
		case n.Banner != nil:
			_ = bar.Clear()
			fmt.Fprintf(os.Stderr, "\r[%s] %s\n", n.Banner.Kind, n.Banner.Message)
		}
	}

	if err := stream.Err(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
