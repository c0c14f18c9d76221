package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/mjsigg/tkd-project-poller/config"
	"github.com/mjsigg/tkd-project-poller/gdrive"
)

var AuthoriseCmd = Authorise{
	workdir:     config.DEFAULT_WORKDIR,
	credentials: config.DEFAULT_CREDENTIALS,
	port:        8085,
	debug:       false,
}

// Authorise runs the OAuth installed application flow for an OAuth client credentials file
// and caches the resulting token for use by the poller.
type Authorise struct {
	workdir     string
	credentials string
	port        uint
	debug       bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises the poller to read the Google Drive folder with a user account"
}

func (cmd *Authorise) Usage() string {
	return "--credentials <file>"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options] --credentials <file>\n", APP)
	fmt.Println()
	fmt.Println("  Authorises read-only access to Google Drive for an OAuth client (desktop application)")
	fmt.Println("  credentials file. The token is stored in <workdir>/.google/<credentials>.drive")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf(`    %s authorise --credentials "credentials.json" --workdir .`+"\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := flag.NewFlagSet("authorise", flag.ExitOnError)

	flagset.StringVar(&cmd.workdir, "workdir", cmd.workdir, "Directory for working files (tokens, checkpoint, etc)")
	flagset.StringVar(&cmd.credentials, "credentials", cmd.credentials, "Path for the 'credentials.json' file")
	flagset.UintVar(&cmd.port, "port", cmd.port, "Local port for the OAuth redirect")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	options := getOptions(args)

	cmd.debug = options.Debug

	// ... check parameters
	if strings.TrimSpace(cmd.credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(cmd.workdir) == "" {
		return fmt.Errorf("--workdir is a required option")
	}

	if cmd.port == 0 || cmd.port > 65535 {
		return fmt.Errorf("--port must be in the range 1-65535")
	}

	tokens := gdrive.TokenFile(cmd.credentials, cmd.workdir)
	if err := authenticate(cmd.credentials, tokens, cmd.port); err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	}

	infof("Saved Google Drive token to %v", tokens)

	return nil
}

func authenticate(credentials, tokens string, port uint) error {
	// ... get OAuth2 configuration
	b, err := os.ReadFile(credentials)
	if err != nil {
		return err
	}

	conf, err := google.ConfigFromJSON(b, gdrive.SCOPE)
	if err != nil {
		return fmt.Errorf("%v is not an OAuth client credentials file (%w)", credentials, err)
	}

	conf.RedirectURL = fmt.Sprintf("http://localhost:%d/", port)

	// ... start HTTP server on localhost
	state := uuid.NewString()
	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		code := rq.FormValue("code")

		if rq.FormValue("state") != state || code == "" {
			http.Error(w, "invalid authorisation response", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "Authorised - you can close this window")

		select {
		case authorised <- code:
		default:
		}
	})

	listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	// ... CTRL-C handler
	interrupt := make(chan os.Signal, 1)

	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	// ... open OAuth2 URL in browser
	url := conf.AuthCodeURL(state, oauth2.AccessTypeOffline)

	fmt.Println()
	fmt.Println("Open the following link in your browser to authorise access to Google Drive:")
	fmt.Println()
	fmt.Printf("  %v\n", url)
	fmt.Println()

	if err := browse(url); err != nil {
		debugf("could not open browser (%v)", err)
	}

	// ... wait for authorisation
	select {
	case <-interrupt:
		return fmt.Errorf("cancelled")

	case code := <-authorised:
		token, err := conf.Exchange(context.Background(), code)
		if err != nil {
			return fmt.Errorf("unable to retrieve token from web (%w)", err)
		}

		return gdrive.SaveToken(tokens, token)
	}
}

func browse(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
