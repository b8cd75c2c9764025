package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wesleyorama2/simplenet/http"
)

func newGetCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get URL",
		Short: "Send a GET request and print the JSON response",
		Long: `Send a GET request. Parameters are percent-escaped and appended to the
URL as a query string.`,
		Example: `  simplenet get https://api.example.com/items -p 'q=red shoes' -p page=2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, _ := cmd.Flags().GetStringArray("param")

			s, err := newSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.close()

			return s.sendOne(http.MethodGet, args[0], pairs)
		},
	}

	cmd.Flags().StringArrayP("param", "p", []string{}, "Query parameter as key=value (can be used multiple times)")
	return cmd
}
