// Package main implements the liamctl CLI for manual operations against
// the LIAM memory API.
//
// Credentials come from LIAM_* environment variables (or a .env file);
// see liam.LoadConfig for the full surface.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/liam-go/pkg/liam"
)

var (
	baseURL    string
	configPath string

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "liamctl",
	Short: "CLI for the LIAM memory API",
	Long: `liamctl exercises the LIAM memory-management API from the command line.

Configuration comes from LIAM_* environment variables or --config.

Examples:
  # Check API health
  liamctl health

  # Store a memory
  liamctl create --user user_123 --content "Prefers window seats" --tag travel

  # Search memories
  liamctl list --user user_123 --query "seats"`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the API base URL")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(forgetCmd)
	rootCmd.AddCommand(tagsCmd)
}

// newClient builds a client from the environment, applying flag overrides.
func newClient() (*liam.Client, error) {
	cfg, err := liam.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return liam.New(cfg)
}

// printResponse writes the full response body as indented JSON.
func printResponse(resp *liam.Response) error {
	out, err := json.MarshalIndent(resp.Body(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check API health",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.HealthCheck(context.Background())
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var (
	createUser    string
	createContent string
	createTag     string
	createSession string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Store a new memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.CreateMemory(context.Background(), liam.CreateMemoryRequest{
			UserKey:   createUser,
			Content:   createContent,
			Tag:       createTag,
			SessionID: createSession,
		})
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var (
	listUser  string
	listQuery string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List or search memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.ListMemories(context.Background(), liam.ListMemoriesRequest{
			UserKey: listUser,
			Query:   listQuery,
			Limit:   listLimit,
		})
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var (
	chatUser  string
	chatQuery string
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Ask a question answered from memory context",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.Chat(context.Background(), liam.ChatRequest{
			UserKey: chatUser,
			Query:   chatQuery,
		})
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var (
	forgetUser      string
	forgetMemoryID  string
	forgetPermanent bool
)

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Forget (or permanently delete) a memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.ForgetMemory(context.Background(), forgetUser, forgetMemoryID, forgetPermanent)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var tagsUser string

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tag operations",
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tags for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.ListTags(context.Background(), tagsUser)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var (
	tagsAddMemoryID string
	tagsAddTag      string
)

var tagsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a tag to an existing memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.AddTag(context.Background(), tagsUser, tagsAddMemoryID, tagsAddTag)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

var (
	tagsOldTag string
	tagsNewTag string
)

var tagsChangeCmd = &cobra.Command{
	Use:   "change",
	Short: "Rename a tag across memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		defer client.Close()

		resp, err := client.ChangeTag(context.Background(), tagsUser, tagsOldTag, tagsNewTag)
		if err != nil {
			return err
		}
		return printResponse(resp)
	},
}

func init() {
	createCmd.Flags().StringVar(&createUser, "user", "", "user key (required)")
	createCmd.Flags().StringVar(&createContent, "content", "", "memory content (required)")
	createCmd.Flags().StringVar(&createTag, "tag", "", "optional tag")
	createCmd.Flags().StringVar(&createSession, "session", "", "optional session ID")
	_ = createCmd.MarkFlagRequired("user")
	_ = createCmd.MarkFlagRequired("content")

	listCmd.Flags().StringVar(&listUser, "user", "", "user key (required)")
	listCmd.Flags().StringVar(&listQuery, "query", "", "optional search query")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "maximum results (default 50)")
	_ = listCmd.MarkFlagRequired("user")

	chatCmd.Flags().StringVar(&chatUser, "user", "", "user key (required)")
	chatCmd.Flags().StringVar(&chatQuery, "query", "", "question to ask (required)")
	_ = chatCmd.MarkFlagRequired("user")
	_ = chatCmd.MarkFlagRequired("query")

	forgetCmd.Flags().StringVar(&forgetUser, "user", "", "user key (required)")
	forgetCmd.Flags().StringVar(&forgetMemoryID, "memory", "", "memory ID (required)")
	forgetCmd.Flags().BoolVar(&forgetPermanent, "permanent", false, "permanently delete instead of soft-forget")
	_ = forgetCmd.MarkFlagRequired("user")
	_ = forgetCmd.MarkFlagRequired("memory")

	tagsCmd.PersistentFlags().StringVar(&tagsUser, "user", "", "user key (required)")
	_ = tagsCmd.MarkPersistentFlagRequired("user")

	tagsAddCmd.Flags().StringVar(&tagsAddMemoryID, "memory", "", "memory ID (required)")
	tagsAddCmd.Flags().StringVar(&tagsAddTag, "tag", "", "tag to add (required)")
	_ = tagsAddCmd.MarkFlagRequired("memory")
	_ = tagsAddCmd.MarkFlagRequired("tag")

	tagsChangeCmd.Flags().StringVar(&tagsOldTag, "old", "", "current tag name (required)")
	tagsChangeCmd.Flags().StringVar(&tagsNewTag, "new", "", "new tag name (required)")
	_ = tagsChangeCmd.MarkFlagRequired("old")
	_ = tagsChangeCmd.MarkFlagRequired("new")

	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	tagsCmd.AddCommand(tagsChangeCmd)
}
