package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"dms-go/internal/app"
	"dms-go/internal/config"
	"dms-go/internal/credentials"
	"dms-go/internal/dms"
	"dms-go/internal/model"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a DMSApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "UploadDocument").
func newApp(operation, parameters string) (*app.DMSApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewDMSApp(cfg, operation, parameters, promptPassphrase)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// promptPassword reads a secret from the terminal without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Fprintf(os.Stderr, "%s: ", label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func promptPassphrase() (string, error) {
	return promptPassword("Key passphrase")
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s ID: %q", what, arg)
	}
	return id, nil
}

// noteFallback tells the user when results came from the simulated store.
func noteFallback(a *app.DMSApp) {
	if a.Mode() == dms.ModeFallenBack {
		fmt.Fprintln(os.Stderr, "note: remote service unavailable, showing simulated data")
	}
}

func printPageFooter(meta model.PageMeta) {
	fmt.Printf("\nPage %d/%d (%d total)\n", meta.Page, meta.TotalPages, meta.Total)
}

var rootCmd = &cobra.Command{
	Use:   "dms",
	Short: "Document management client",
}

// config command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL, _ := cmd.Flags().GetString("base-url")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(baseURL, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base URL: %s\n", cfg.BaseURL)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base URL:    %s\n", cfg.BaseURL)
		fmt.Printf("Force Mock:  %v\n", cfg.ForceMock)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Journal:     %s (%s)\n", cfg.Journal.Type, cfg.Journal.DataDir)
		fmt.Printf("Credentials: %s (%s)\n", cfg.Credentials.Type, cfg.Credentials.TokenPath)
		return nil
	},
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage encryption keys",
}

var configKeysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the key pair for age-encrypted credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if cfg.Credentials.Type != "age" {
			return fmt.Errorf("credentials type is %q; set type = \"age\" in the config first", cfg.Credentials.Type)
		}

		store := credentials.NewAgeStore(
			cfg.Credentials.TokenPath,
			cfg.Credentials.RecipientPath,
			cfg.Credentials.IdentityPath,
			promptPassphrase,
		)
		if store.IsConfigured() {
			return fmt.Errorf("key pair already exists at %s", cfg.Credentials.RecipientPath)
		}

		passphrase, err := promptPassword("New key passphrase")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm passphrase")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := store.Setup(passphrase); err != nil {
			return fmt.Errorf("generating key pair: %w", err)
		}

		fmt.Printf("Key pair generated:\n  recipient: %s\n  identity:  %s\n",
			cfg.Credentials.RecipientPath, cfg.Credentials.IdentityPath)
		return nil
	},
}

// auth commands

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Log in and save the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Login", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := promptPassword("Password")
		if err != nil {
			return err
		}

		sess, err := a.Login(cmd.Context(), args[0], password)
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register EMAIL FULL_NAME",
	Short: "Create an account and save the session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Register", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		password, err := promptPassword("Password")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		sess, err := a.Register(cmd.Context(), args[0], args[1], password)
		if err != nil {
			return err
		}

		fmt.Printf("Registered and logged in as %s (%s)\n", sess.User.Name, sess.User.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the saved session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Logout", "")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Whoami", "")
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.Whoami(cmd.Context())
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("#%d  %s  %s  %s\n", user.ID, user.Name, user.Email, user.Role)
		return nil
	},
}

// docs commands

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage documents",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		search, _ := cmd.Flags().GetString("search")
		status, _ := cmd.Flags().GetString("status")
		docType, _ := cmd.Flags().GetString("type")

		a, err := newApp("ListDocuments", "")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.ListDocuments(cmd.Context(), dms.ListDocumentsInput{
			Page:     page,
			PageSize: pageSize,
			Search:   search,
			Status:   model.DocumentStatus(status),
			Type:     docType,
		})
		if err != nil {
			return err
		}

		noteFallback(a)
		if len(result.Items) == 0 {
			fmt.Println("No documents found.")
			return nil
		}

		for _, d := range result.Items {
			fmt.Printf("#%-4d v%-2d %-16s %-14s %s\n",
				d.ID, d.Version, d.Status, d.DocumentType, d.Title)
		}
		printPageFooter(result.Meta)
		return nil
	},
}

var docsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "document")
		if err != nil {
			return err
		}

		a, err := newApp("GetDocument", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.GetDocument(cmd.Context(), id)
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Title:       %s\n", doc.Title)
		fmt.Printf("Description: %s\n", doc.Description)
		fmt.Printf("Type:        %s\n", doc.DocumentType)
		fmt.Printf("Status:      %s\n", doc.Status)
		fmt.Printf("Version:     %d\n", doc.Version)
		fmt.Printf("File:        %s\n", doc.FileURL)
		fmt.Printf("Created:     %s (user #%d)\n", doc.CreatedAt.Format("2006-01-02 15:04:05"), doc.CreatedBy)
		return nil
	},
}

var docsUploadCmd = &cobra.Command{
	Use:   "upload [FILE]",
	Short: "Upload a new document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		docType, _ := cmd.Flags().GetString("type")

		filePath := ""
		if len(args) > 0 {
			filePath = args[0]
		}

		a, err := newApp("UploadDocument", title)
		if err != nil {
			return err
		}
		defer a.Close()

		doc, err := a.UploadDocument(cmd.Context(), dms.UploadDocumentInput{
			Title:        title,
			Description:  description,
			DocumentType: docType,
			FilePath:     filePath,
		})
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Uploaded document #%d (%s) at version %d\n", doc.ID, doc.Title, doc.Version)
		return nil
	},
}

var docsDownloadCmd = &cobra.Command{
	Use:   "download ID [OUT]",
	Short: "Download a document's file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "document")
		if err != nil {
			return err
		}

		a, err := newApp("DownloadDocument", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		out := os.Stdout
		if len(args) > 1 {
			f, err := os.Create(args[1])
			if err != nil {
				return fmt.Errorf("creating output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if err := a.DownloadDocument(cmd.Context(), id, out); err != nil {
			return err
		}

		noteFallback(a)
		if len(args) > 1 {
			fmt.Printf("Saved to %s\n", args[1])
		}
		return nil
	},
}

var docsReplaceCmd = &cobra.Command{
	Use:   "replace ID FILE",
	Short: "Request replacement of a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		expectedVersion, _ := cmd.Flags().GetInt("expected-version")
		note, _ := cmd.Flags().GetString("note")

		a, err := newApp("RequestReplace", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.RequestReplace(cmd.Context(), id, dms.ReplaceRequestInput{
			ExpectedVersion: expectedVersion,
			FilePath:        args[1],
			Note:            note,
		})
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Replace request submitted for document #%d (awaiting review)\n", id)
		return nil
	},
}

var docsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Request deletion of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "document")
		if err != nil {
			return err
		}
		expectedVersion, _ := cmd.Flags().GetInt("expected-version")
		note, _ := cmd.Flags().GetString("note")

		a, err := newApp("RequestDelete", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.RequestDelete(cmd.Context(), id, dms.DeleteRequestInput{
			ExpectedVersion: expectedVersion,
			Note:            note,
		})
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Delete request submitted for document #%d (awaiting review)\n", id)
		return nil
	},
}

// requests commands

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Review permission requests",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List permission requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")
		status, _ := cmd.Flags().GetString("status")

		a, err := newApp("ListRequests", "")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.ListRequests(cmd.Context(), dms.ListRequestsInput{
			Status:   model.PermissionStatus(strings.ToUpper(status)),
			Page:     page,
			PageSize: pageSize,
		})
		if err != nil {
			return err
		}

		noteFallback(a)
		if len(result.Items) == 0 {
			fmt.Println("No permission requests found.")
			return nil
		}

		for _, r := range result.Items {
			target := "(deleted)"
			if r.DocumentID != 0 {
				target = fmt.Sprintf("doc #%d", r.DocumentID)
			}
			fmt.Printf("#%-4d %-8s %-10s %-10s by %s\n",
				r.ID, r.Action, r.Status, target, r.RequesterEmail)
			if r.Note != "" {
				fmt.Printf("      note: %s\n", r.Note)
			}
		}
		printPageFooter(result.Meta)
		return nil
	},
}

var requestsApproveCmd = &cobra.Command{
	Use:   "approve ID",
	Short: "Approve a permission request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "request")
		if err != nil {
			return err
		}

		a, err := newApp("ApproveRequest", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.ApproveRequest(cmd.Context(), id); err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Request #%d approved\n", id)
		return nil
	},
}

var requestsRejectCmd = &cobra.Command{
	Use:   "reject ID",
	Short: "Reject a permission request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "request")
		if err != nil {
			return err
		}
		note, _ := cmd.Flags().GetString("note")

		a, err := newApp("RejectRequest", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RejectRequest(cmd.Context(), id, note); err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Request #%d rejected\n", id)
		return nil
	},
}

// notifications commands

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"notif"},
	Short:   "Manage notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		a, err := newApp("ListNotifications", "")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.ListNotifications(cmd.Context(), page, pageSize)
		if err != nil {
			return err
		}

		noteFallback(a)
		if len(result.Items) == 0 {
			fmt.Println("No notifications.")
			return nil
		}

		for _, n := range result.Items {
			marker := "*"
			if n.IsRead {
				marker = " "
			}
			fmt.Printf("%s #%-4d %-20s %s  %s\n",
				marker, n.ID, n.Type, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
		}
		printPageFooter(result.Meta)
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read ID",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "notification")
		if err != nil {
			return err
		}

		a, err := newApp("MarkNotificationRead", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.MarkNotificationRead(cmd.Context(), id); err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Notification #%d marked read\n", id)
		return nil
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark all notifications as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("MarkAllNotificationsRead", "")
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.MarkAllNotificationsRead(cmd.Context())
		if err != nil {
			return err
		}

		noteFallback(a)
		fmt.Printf("Marked %d notification(s) read\n", n)
		return nil
	},
}

// history command

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View client operation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("History", "")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt.Valid {
				d := op.FinishedAt.Time.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-24s  %s  %-8s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeysCmd)
	configKeysCmd.AddCommand(configKeysInitCmd)
	configInitCmd.Flags().String("base-url", "http://localhost:8000/api", "Remote service base URL")

	// docs subcommands
	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsUploadCmd)
	docsCmd.AddCommand(docsDownloadCmd)
	docsCmd.AddCommand(docsReplaceCmd)
	docsCmd.AddCommand(docsDeleteCmd)
	docsListCmd.Flags().IntP("page", "p", 1, "Page number")
	docsListCmd.Flags().Int("page-size", 10, "Items per page")
	docsListCmd.Flags().StringP("search", "s", "", "Search title and description")
	docsListCmd.Flags().String("status", "", "Filter by status (ACTIVE, PENDING_REPLACE, PENDING_DELETE)")
	docsListCmd.Flags().StringP("type", "t", "", "Filter by document type")
	docsUploadCmd.Flags().String("title", "", "Document title")
	docsUploadCmd.Flags().String("description", "", "Document description")
	docsUploadCmd.Flags().String("type", "", "Document type")
	docsReplaceCmd.Flags().Int("expected-version", 0, "Fail unless the document is at this version")
	docsReplaceCmd.Flags().String("note", "", "Note for the reviewer")
	docsDeleteCmd.Flags().Int("expected-version", 0, "Fail unless the document is at this version")
	docsDeleteCmd.Flags().String("note", "", "Note for the reviewer")

	// requests subcommands
	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsApproveCmd)
	requestsCmd.AddCommand(requestsRejectCmd)
	requestsListCmd.Flags().IntP("page", "p", 1, "Page number")
	requestsListCmd.Flags().Int("page-size", 10, "Items per page")
	requestsListCmd.Flags().String("status", "", "Filter by status (PENDING, APPROVED, REJECTED)")
	requestsRejectCmd.Flags().String("note", "", "Reason for rejection")

	// notifications subcommands
	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	notificationsListCmd.Flags().IntP("page", "p", 1, "Page number")
	notificationsListCmd.Flags().Int("page-size", 20, "Items per page")

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
