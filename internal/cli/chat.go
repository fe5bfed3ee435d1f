package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"DashPull/internal/domain/models"
	"DashPull/internal/services/relay"
)

func newChatCommand(o *options) *cobra.Command {
	var (
		apiURL  string
		lang    string
		page    string
		timeout = relay.DefaultTimeout
		raw     bool
	)
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Send one message through the chat relay and print the rendered reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" {
				cfg, err := o.config()
				if err != nil {
					return err
				}
				apiURL = cfg.Chat.UpstreamURL
			}
			if apiURL == "" {
				return errors.New("no relay url: pass --url or set chat.upstream_url")
			}

			client := relay.NewClient(apiURL, relay.WithTimeout(timeout))
			session := relay.NewSession(client, lang, page)
			outcome := session.Send(cmd.Context(), strings.Join(args, " "))

			out := cmd.OutOrStdout()
			if !outcome.OK() {
				fmt.Fprintln(cmd.ErrOrStderr(), outcome.Message)
				return outcome.Err
			}
			if raw {
				fmt.Fprintln(out, outcome.Reply)
			} else {
				fmt.Fprintln(out, outcome.HTML)
			}
			fmt.Fprintln(out, outcome.Meta(session.Lang()))
			return nil
		},
	}
	cmd.Flags().StringVar(&apiURL, "url", "", "relay base URL; /chat is appended")
	cmd.Flags().StringVar(&lang, "lang", models.LangFR, "fr or en")
	cmd.Flags().StringVar(&page, "page", "", "page context sent with the message")
	cmd.Flags().DurationVar(&timeout, "timeout", relay.DefaultTimeout, "request timeout")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the markdown reply instead of HTML")
	return cmd
}
