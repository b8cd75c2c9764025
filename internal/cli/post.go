package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wesleyorama2/simplenet/http"
)

func newPostCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post URL",
		Short: "Send a POST request and print the JSON response",
		Long: `Send a POST request. Parameters are encoded as a query string and sent
as the request body. At least one parameter is required.`,
		Example: `  simplenet post https://api.example.com/items -p name=boot -p size=42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, _ := cmd.Flags().GetStringArray("param")

			s, err := newSession(cmd, v)
			if err != nil {
				return err
			}
			defer s.close()

			return s.sendOne(http.MethodPost, args[0], pairs)
		},
	}

	cmd.Flags().StringArrayP("param", "p", []string{}, "Body parameter as key=value (can be used multiple times)")
	return cmd
}
