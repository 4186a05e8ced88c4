// Command contentctl inspects and repairs a casino reviews content tree
// without starting the server.
//
// Usage:
//
//	contentctl [-content DIR] [-public DIR] <command>
//
// Commands:
//
//	init           create missing directories and index files
//	check          report issues; exit status 1 if any are found
//	diagnose       print the full diagnostics report as JSON
//	repair         init, fix-slugs and sync-media in sequence
//	fix-slugs      reconcile the page index with the page files
//	sync-media     reconcile the media registry with the images directory
//	hash-password  read a password on stdin and print its bcrypt hash
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"casinoreviews/internal/diagnostics"
	"casinoreviews/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("contentctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	contentDir := fs.String("content", envOrDefault("CONTENT_DIR", "content"), "content directory")
	publicDir := fs.String("public", envOrDefault("PUBLIC_DIR", "public"), "public directory")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: contentctl [-content DIR] [-public DIR] init|check|diagnose|repair|fix-slugs|sync-media|hash-password")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	tool := diagnostics.New(store.NewDir(*contentDir, *publicDir))

	switch cmd := fs.Arg(0); cmd {
	case "init":
		return printResult(stdout, tool.FixDirectories())
	case "fix-slugs":
		return printResult(stdout, tool.FixPageSlugs())
	case "sync-media":
		return printResult(stdout, tool.SyncMedia())
	case "repair":
		status := 0
		for _, step := range []struct {
			name string
			run  func() *diagnostics.Result
		}{
			{"init", tool.FixDirectories},
			{"fix-slugs", tool.FixPageSlugs},
			{"sync-media", tool.SyncMedia},
		} {
			fmt.Fprintf(stdout, "== %s\n", step.name)
			if printResult(stdout, step.run()) != 0 {
				status = 1
			}
		}
		return status
	case "check":
		report := tool.Run()
		if report.Healthy() {
			fmt.Fprintln(stdout, "ok: no issues found")
			return 0
		}
		for _, issue := range report.Issues {
			fmt.Fprintln(stdout, "issue:", issue)
		}
		return 1
	case "diagnose":
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tool.Run()); err != nil {
			fmt.Fprintln(stderr, "encode report:", err)
			return 1
		}
		return 0
	case "hash-password":
		hash, err := hashPassword(stdin)
		if err != nil {
			fmt.Fprintln(stderr, "hash-password:", err)
			return 1
		}
		fmt.Fprintln(stdout, hash)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
}

func printResult(w io.Writer, res *diagnostics.Result) int {
	fmt.Fprint(w, res.String())
	if !res.Success {
		return 1
	}
	return 0
}

// hashPassword reads the first line of r and returns its bcrypt hash.
func hashPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
