package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"strconv"

	"golang.org/x/oauth2"

	"github.com/sensorlog/dht-sheets/gsheets"
)

var AuthoriseCmd = Authorise{
	command: command{
		env: ".env",
	},
}

type Authorise struct {
	command
	nobrowser bool
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises dht-sheets to access Google Sheets"
}

func (cmd *Authorise) Usage() string {
	return "[--credentials <file>] [--authorized-user <file>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Authorises dht-sheets to access Google Sheets with the OAuth client in the application")
	fmt.Println("  credentials file and saves the authorised session to the authorized user file.")
	fmt.Println()
	fmt.Println("  Not required when the credentials file is a service account key.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Printf("    %s authorise --credentials ~/.config/gspread/credentials.json\n", APP)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("authorise")

	flagset.BoolVar(&cmd.nobrowser, "no-browser", cmd.nobrowser, "Prints the authorisation URL without opening a browser")

	return flagset
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args)
	if err != nil {
		return err
	}

	config, err := gsheets.OAuthConfig(cfg.Credentials)
	if err != nil {
		return fmt.Errorf("invalid credentials file %v (%w)", cfg.Credentials, err)
	}

	token, err := cmd.authorise(ctx, config)
	if err != nil {
		return fmt.Errorf("authorisation error (%w)", err)
	} else if token == nil {
		infof("Authorisation cancelled")
		return nil
	}

	if err := gsheets.SaveToken(cfg.AuthorizedUser, token); err != nil {
		return fmt.Errorf("unable to save authorised session (%w)", err)
	}

	infof("Saved authorised session to %v", cfg.AuthorizedUser)

	return nil
}

// authorise runs the OAuth2 installed application flow with a loopback
// redirect. Returns a nil token if cancelled.
func (cmd *Authorise) authorise(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	state, err := nonce()
	if err != nil {
		return nil, err
	}

	config.RedirectURL = redirectURL(listener.Addr())

	authorised := make(chan string, 1)
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		debugf("RQ  %v", rq.URL)

		if rq.FormValue("state") != state {
			http.Error(w, "Invalid authorisation state", http.StatusBadRequest)
			return
		}

		if e := rq.FormValue("error"); e != "" {
			http.Error(w, fmt.Sprintf("Authorisation failed (%v)", e), http.StatusForbidden)
			return
		}

		code := rq.FormValue("code")
		if code == "" {
			http.Error(w, "Missing authorisation code", http.StatusBadRequest)
			return
		}

		fmt.Fprintf(w, "%v is authorised - you can close this window", APP)

		select {
		case authorised <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler: mux,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	url := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Println()
	fmt.Printf("  Open the following link in your browser to authorise %v:\n", APP)
	fmt.Println()
	fmt.Printf("    %v\n", url)
	fmt.Println()

	if !cmd.nobrowser {
		if _, err := exec.Command(BROWSER, url).CombinedOutput(); err != nil {
			debugf("could not open browser (%v)", err)
		}
	}

	select {
	case <-ctx.Done():
		return nil, nil

	case code := <-authorised:
		return config.Exchange(ctx, code)
	}
}

// redirectURL is the loopback redirect for the listener address. The host is
// the literal IP the listener is bound to, not 'localhost'.
func redirectURL(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return fmt.Sprintf("http://%v/", net.JoinHostPort(tcp.IP.String(), strconv.Itoa(tcp.Port)))
	}

	return fmt.Sprintf("http://%v/", addr)
}

func nonce() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
