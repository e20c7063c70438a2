package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/singhxgaurav-code/viral-fashion-agent/internal/distribution"
	"github.com/singhxgaurav-code/viral-fashion-agent/pkg/config"
)

var (
	authInfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	authSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	authErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with external services",
	Long:  `Authenticate with YouTube or check credential status using values from .env`,
}

var authYouTubeCmd = &cobra.Command{
	Use:   "youtube",
	Short: "Authenticate with YouTube (OAuth)",
	Long:  `Complete the YouTube OAuth flow and store the token for uploads.`,
	RunE:  runAuthYouTube,
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check which services are configured",
	RunE:  runAuthStatus,
}

func init() {
	authCmd.AddCommand(authYouTubeCmd)
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthStatus(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	fmt.Println(authInfoStyle.Render("\nService Credential Status:\n"))

	if cfg.YouTubeClientID != "" && cfg.YouTubeClientSecret != "" {
		if _, err := os.Stat(cfg.YouTubeTokenPath); err == nil {
			fmt.Println(authSuccessStyle.Render("✓ YouTube: authenticated (token exists)"))
		} else {
			fmt.Println(authErrorStyle.Render("✗ YouTube: credentials set, but not authenticated"))
			fmt.Println(authInfoStyle.Render("  Run: fashion-agent auth youtube"))
		}
	} else {
		fmt.Println(authErrorStyle.Render("✗ YouTube: missing YOUTUBE_CLIENT_ID or YOUTUBE_CLIENT_SECRET"))
	}

	printKeyStatus("Groq", cfg.GroqAPIKey != "", true)
	printKeyStatus("OpenAI", cfg.OpenAIAPIKey != "", false)
	printKeyStatus("Hugging Face", cfg.HuggingFaceAPIKey != "", false)
	printKeyStatus("ElevenLabs", cfg.ElevenLabsAPIKey != "", false)
	printKeyStatus("Pexels", cfg.PexelsAPIKey != "", true)
	printKeyStatus("Unsplash", cfg.UnsplashAccessKey != "", false)
	printKeyStatus("Reddit", cfg.RedditClientID != "" && cfg.RedditClientSecret != "", false)
	printKeyStatus("Twitter (trends)", cfg.TwitterBearerToken != "", false)
	printKeyStatus("Twitter (posting)", cfg.TwitterConsumerKey != "" && cfg.TwitterAccessToken != "", false)
	printKeyStatus("Instagram", cfg.InstagramUsername != "" && cfg.InstagramPassword != "", false)
	printKeyStatus("Facebook", cfg.FacebookPageID != "" && cfg.FacebookAccessToken != "", false)
	printKeyStatus("TikTok", cfg.TikTokSessionID != "", false)

	fmt.Println()
	return nil
}

func printKeyStatus(name string, configured, required bool) {
	switch {
	case configured:
		fmt.Println(authSuccessStyle.Render("✓ " + name + ": configured"))
	case required:
		fmt.Println(authErrorStyle.Render("✗ " + name + ": not configured"))
	default:
		fmt.Println(authInfoStyle.Render("○ " + name + ": not configured (optional)"))
	}
}

func runAuthYouTube(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if cfg.YouTubeClientID == "" || cfg.YouTubeClientSecret == "" {
		return fmt.Errorf("YOUTUBE_CLIENT_ID and YOUTUBE_CLIENT_SECRET must be set in .env")
	}

	auth := distribution.NewYouTubeAuth(cfg.YouTubeClientID, cfg.YouTubeClientSecret, cfg.YouTubeTokenPath)

	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	listener, err := net.Listen("tcp", ":8080")
	if err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}

	server := &http.Server{
		ReadHeaderTimeout: 10 * time.Second,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/callback" {
				http.NotFound(w, r)
				return
			}

			code := r.URL.Query().Get("code")
			if code == "" {
				errChan <- fmt.Errorf("no code in callback")
				_, _ = fmt.Fprintf(w, "<html><body><h1>Error</h1><p>No authorization code received.</p></body></html>")
				return
			}

			codeChan <- code
			_, _ = fmt.Fprintf(w, "<html><body><h1>Success!</h1><p>You can close this window and return to the terminal.</p></body></html>")
		}),
	}

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	authURL := auth.AuthURL()
	fmt.Println(authInfoStyle.Render("\nOpening browser for YouTube authentication..."))
	fmt.Println(authInfoStyle.Render("If the browser doesn't open, visit:\n" + authURL))

	_ = browser.OpenURL(authURL)

	fmt.Println(authInfoStyle.Render("\nWaiting for authentication..."))

	select {
	case code := <-codeChan:
		if err := auth.Exchange(cmd.Context(), code); err != nil {
			return fmt.Errorf("exchange code: %w", err)
		}

		fmt.Println(authSuccessStyle.Render("✓ YouTube authentication complete"))
		fmt.Println(authSuccessStyle.Render("  Token saved to: " + cfg.YouTubeTokenPath))
		return nil

	case err := <-errChan:
		return err

	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authentication timed out")
	}
}
