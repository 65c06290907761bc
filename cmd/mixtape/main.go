// Package main provides the mixtape command-line client.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"

	mixtapev1 "github.com/osa030/mixtape/internal/api/mixtapev1"
	"github.com/osa030/mixtape/internal/api/mixtapev1/mixtapev1connect"
	"github.com/osa030/mixtape/internal/infra/logger"
	"github.com/osa030/mixtape/internal/ui"
)

var (
	app     = kingpin.New("mixtape", "mixtape playlist client")
	server  = app.Flag("server", "Daemon address").Default("http://127.0.0.1:7878").Envar("MIXTAPE_SERVER").String()
	logfile = app.Flag("logfile", "Path to log file (default: discard)").String()

	// search command
	searchCmd   = app.Command("search", "Search the catalog")
	searchQuery = searchCmd.Arg("query", "Search words").Required().Strings()

	// add command
	addCmd      = app.Command("add", "Add a song from a search result or from explicit fields")
	addSearch   = addCmd.Flag("search", "Search and add one of the results").String()
	addPick     = addCmd.Flag("pick", "Result number to add with --search").Default("1").Int()
	addTitle    = addCmd.Flag("title", "Song title").String()
	addArtist   = addCmd.Flag("artist", "Artist").String()
	addAlbum    = addCmd.Flag("album", "Album").String()
	addDuration = addCmd.Flag("duration", "Length as M:SS").String()
	addURL      = addCmd.Flag("url", "Audio URL").String()

	// add-file command
	addFileCmd  = app.Command("add-file", "Add a local audio file using its tags")
	addFilePath = addFileCmd.Arg("path", "Audio file").Required().String()

	// list command
	listCmd = app.Command("list", "Show the playlist").Alias("ls")

	// remove command
	removeCmd    = app.Command("remove", "Remove a song").Alias("rm")
	removeNumber = removeCmd.Arg("number", "Song number as shown by list").Required().Int()
	removeYes    = removeCmd.Flag("yes", "Do not ask for confirmation").Short('y').Bool()

	// edit command
	editCmd      = app.Command("edit", "Edit a song; omitted fields keep their value")
	editNumber   = editCmd.Arg("number", "Song number as shown by list").Required().Int()
	editTitle    = editCmd.Flag("title", "Song title").String()
	editArtist   = editCmd.Flag("artist", "Artist").String()
	editAlbum    = editCmd.Flag("album", "Album").String()
	editDuration = editCmd.Flag("duration", "Length as M:SS").String()
	editURL      = editCmd.Flag("url", "Audio URL").String()

	// share command
	shareCmd  = app.Command("share", "Print a share link for the playlist")
	shareBase = shareCmd.Flag("base-url", "Link base (default: daemon setting)").String()

	// import command
	importCmd   = app.Command("import", "Load a shared playlist into an empty playlist")
	importInput = importCmd.Arg("link", "Share link or token").Required().String()

	// transport commands
	playCmd      = app.Command("play", "Play, pause or resume").Alias("toggle")
	selectCmd    = app.Command("select", "Play a song")
	selectNumber = selectCmd.Arg("number", "Song number as shown by list").Required().Int()
	nextCmd      = app.Command("next", "Play the next song")
	prevCmd      = app.Command("prev", "Play the previous song").Alias("previous")
	seekCmd      = app.Command("seek", "Jump within the current song")
	seekPercent  = seekCmd.Arg("percent", "Position from 0 to 100").Required().Float64()
	statusCmd    = app.Command("status", "Show what is playing")

	// watch command
	watchCmd = app.Command("watch", "Follow playback with a progress bar")

	// tui command
	tuiCmd = app.Command("tui", "Open the interactive player")
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	playlist := mixtapev1connect.NewPlaylistServiceClient(http.DefaultClient, *server)
	playback := mixtapev1connect.NewPlaybackServiceClient(http.DefaultClient, *server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var err error
	switch command {
	case searchCmd.FullCommand():
		err = search(ctx, playlist, strings.Join(*searchQuery, " "))
	case addCmd.FullCommand():
		if *addSearch != "" {
			err = addFromSearch(ctx, playlist, *addSearch, *addPick)
			break
		}
		err = add(ctx, playlist, mixtapev1.Track{
			Title:    *addTitle,
			Artist:   *addArtist,
			Album:    *addAlbum,
			Duration: *addDuration,
			AudioURL: *addURL,
		})
	case addFileCmd.FullCommand():
		err = addFile(ctx, playlist, *addFilePath)
	case listCmd.FullCommand():
		err = list(ctx, playlist)
	case removeCmd.FullCommand():
		err = remove(ctx, playlist, *removeNumber, *removeYes)
	case editCmd.FullCommand():
		err = edit(ctx, playlist, *editNumber)
	case shareCmd.FullCommand():
		err = share(ctx, playlist, *shareBase)
	case importCmd.FullCommand():
		err = importShared(ctx, playlist, *importInput)
	case playCmd.FullCommand():
		err = transport(playback.TogglePlay(ctx, connect.NewRequest(&mixtapev1.TogglePlayRequest{})))
	case selectCmd.FullCommand():
		err = transport(playback.Select(ctx, connect.NewRequest(&mixtapev1.SelectRequest{Index: *selectNumber - 1})))
	case nextCmd.FullCommand():
		err = transport(playback.Next(ctx, connect.NewRequest(&mixtapev1.NextRequest{})))
	case prevCmd.FullCommand():
		err = transport(playback.Previous(ctx, connect.NewRequest(&mixtapev1.PreviousRequest{})))
	case seekCmd.FullCommand():
		err = transport(playback.Seek(ctx, connect.NewRequest(&mixtapev1.SeekRequest{Position: *seekPercent / 100})))
	case statusCmd.FullCommand():
		err = transport(playback.Status(ctx, connect.NewRequest(&mixtapev1.StatusRequest{})))
	case watchCmd.FullCommand():
		err = watch(ctx, playback)
	case tuiCmd.FullCommand():
		err = runTUI(ctx)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", ui.ErrorMessage(err))
		os.Exit(1)
	}
}

func search(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, query string) error {
	resp, err := client.Search(ctx, connect.NewRequest(&mixtapev1.SearchRequest{Query: query}))
	if err != nil {
		return err
	}
	if resp.Msg.Message != "" {
		fmt.Println(resp.Msg.Message)
	}
	for i, t := range resp.Msg.Tracks {
		fmt.Printf("%2d. %s - %s (%s) [%s]\n", i+1, t.Title, t.Artist, t.Duration, t.Album)
		fmt.Printf("    %s\n", t.AudioURL)
	}
	return nil
}

func add(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, t mixtapev1.Track) error {
	resp, err := client.AddTrack(ctx, connect.NewRequest(&mixtapev1.AddTrackRequest{Track: t}))
	if err != nil {
		return err
	}
	fmt.Println(resp.Msg.Message)
	return nil
}

func addFromSearch(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, query string, pick int) error {
	resp, err := client.Search(ctx, connect.NewRequest(&mixtapev1.SearchRequest{Query: query}))
	if err != nil {
		return err
	}
	tracks := resp.Msg.Tracks
	if len(tracks) == 0 {
		return errors.New(resp.Msg.Message)
	}
	if pick < 1 || pick > len(tracks) {
		return errors.Newf("no result number %d (%d results)", pick, len(tracks))
	}
	return add(ctx, client, tracks[pick-1])
}

func addFile(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, path string) error {
	// The daemon reads the file, so send an absolute path.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	resp, err := client.AddFile(ctx, connect.NewRequest(&mixtapev1.AddFileRequest{Path: abs}))
	if err != nil {
		return err
	}
	fmt.Println(resp.Msg.Message)
	fmt.Printf("  %s - %s [%s]\n", resp.Msg.Track.Title, resp.Msg.Track.Artist, resp.Msg.Track.Album)
	return nil
}

func list(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient) error {
	resp, err := client.List(ctx, connect.NewRequest(&mixtapev1.ListRequest{}))
	if err != nil {
		return err
	}
	printState(resp.Msg.State)
	return nil
}

func remove(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, number int, yes bool) error {
	if !yes {
		t, err := trackAt(ctx, client, number)
		if err != nil {
			return err
		}
		if !confirm(fmt.Sprintf("Remove %q from your playlist?", t.Title)) {
			fmt.Println("Cancelled")
			return nil
		}
	}
	resp, err := client.RemoveTrack(ctx, connect.NewRequest(&mixtapev1.RemoveTrackRequest{Index: number - 1}))
	if err != nil {
		return err
	}
	fmt.Println(resp.Msg.Message)
	return nil
}

func edit(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, number int) error {
	t, err := trackAt(ctx, client, number)
	if err != nil {
		return err
	}
	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&t.Title, *editTitle)
	override(&t.Artist, *editArtist)
	override(&t.Album, *editAlbum)
	override(&t.Duration, *editDuration)
	override(&t.AudioURL, *editURL)

	resp, err := client.UpdateTrack(ctx, connect.NewRequest(&mixtapev1.UpdateTrackRequest{Index: number - 1, Track: t}))
	if err != nil {
		return err
	}
	fmt.Println(resp.Msg.Message)
	return nil
}

func share(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, base string) error {
	resp, err := client.Share(ctx, connect.NewRequest(&mixtapev1.ShareRequest{BaseURL: base}))
	if err != nil {
		return err
	}
	fmt.Println(resp.Msg.URL)
	return nil
}

func importShared(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, input string) error {
	resp, err := client.Import(ctx, connect.NewRequest(&mixtapev1.ImportRequest{Input: input}))
	if err != nil {
		return err
	}
	if resp.Msg.Count == 0 {
		fmt.Println("The shared playlist is empty")
		return nil
	}
	fmt.Printf("%s (%d songs)\n", resp.Msg.Message, resp.Msg.Count)
	return nil
}

func transport(resp *connect.Response[mixtapev1.PlaybackResponse], err error) error {
	if err != nil {
		return err
	}
	if resp.Msg.Message != "" {
		fmt.Println(resp.Msg.Message)
	}
	printState(resp.Msg.State)
	return nil
}

func trackAt(ctx context.Context, client *mixtapev1connect.PlaylistServiceClient, number int) (mixtapev1.Track, error) {
	resp, err := client.List(ctx, connect.NewRequest(&mixtapev1.ListRequest{}))
	if err != nil {
		return mixtapev1.Track{}, err
	}
	tracks := resp.Msg.State.Tracks
	if number < 1 || number > len(tracks) {
		return mixtapev1.Track{}, errors.Newf("no song number %d (playlist has %d)", number, len(tracks))
	}
	return tracks[number-1], nil
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	var answer string
	if _, err := fmt.Scanln(&answer); err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func runTUI(ctx context.Context) error {
	// Logs would corrupt the screen; send them to a file or nowhere.
	output := "discard"
	if *logfile != "" {
		output = *logfile
	}
	closeLog, err := logger.Init(logger.Config{Output: output, Level: "debug"})
	if err != nil {
		return err
	}
	defer closeLog()

	model := ui.NewModel(ctx, ui.NewRemote(http.DefaultClient, *server))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return errors.Wrap(err, "error running player")
	}
	return nil
}
