package commands

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/restclient/internal/constants"
	"github.com/fivetwenty-io/restclient/pkg/restclient"
)

// bodyFlags holds the --data and --json flags shared by write commands.
type bodyFlags struct {
	data []string
	json string
}

func (f *bodyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.data, "data", "d", nil, "form field as key=value (repeatable)")
	cmd.Flags().StringVar(&f.json, "json", "", "raw JSON request body")
}

func (f *bodyFlags) build() (interface{}, error) {
	return buildBody(f.data, f.json)
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "list RESOURCE",
		Short: "List a resource collection",
		Long:  "Send GET to the collection URL of RESOURCE, optionally with query parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Resource(args[0]).List(cmd.Context(), query)
			if err != nil {
				return err
			}

			return renderResult(cmd, http.MethodGet, result)
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")

	return cmd
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	var body bodyFlags

	cmd := &cobra.Command{
		Use:   "create RESOURCE",
		Short: "Create a resource",
		Long:  "Send POST to the collection URL of RESOURCE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := body.build()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := client.Resource(args[0]).Create(cmd.Context(), data)
			if err != nil {
				return err
			}

			return renderResult(cmd, http.MethodPost, result)
		},
	}

	body.register(cmd)

	return cmd
}

// NewRetrieveCommand creates the retrieve command.
func NewRetrieveCommand() *cobra.Command {
	return newKeyedCommand("retrieve", "Retrieve a single resource", http.MethodGet,
		func(cmd *cobra.Command, driver *restclient.ResourceDriver, key string) (*restclient.Result, error) {
			return driver.Retrieve(cmd.Context(), key)
		})
}

// NewDestroyCommand creates the destroy command.
func NewDestroyCommand() *cobra.Command {
	return newKeyedCommand("destroy", "Delete a single resource", http.MethodDelete,
		func(cmd *cobra.Command, driver *restclient.ResourceDriver, key string) (*restclient.Result, error) {
			return driver.Destroy(cmd.Context(), key)
		})
}

// NewUpdateCommand creates the update command. A body is required.
func NewUpdateCommand() *cobra.Command {
	var body bodyFlags

	cmd := newKeyedCommand("update", "Replace a single resource", http.MethodPut,
		func(cmd *cobra.Command, driver *restclient.ResourceDriver, key string) (*restclient.Result, error) {
			data, err := body.build()
			if err != nil {
				return nil, err
			}

			if data == nil {
				return nil, constants.ErrBodyRequired
			}

			return driver.Update(cmd.Context(), key, data)
		})

	body.register(cmd)

	return cmd
}

// NewPartialUpdateCommand creates the partial-update command.
func NewPartialUpdateCommand() *cobra.Command {
	var body bodyFlags

	cmd := newKeyedCommand("partial-update", "Partially update a single resource", http.MethodPatch,
		func(cmd *cobra.Command, driver *restclient.ResourceDriver, key string) (*restclient.Result, error) {
			data, err := body.build()
			if err != nil {
				return nil, err
			}

			return driver.PartialUpdate(cmd.Context(), key, data)
		})

	body.register(cmd)

	return cmd
}

type keyedAction func(cmd *cobra.Command, driver *restclient.ResourceDriver, key string) (*restclient.Result, error)

func newKeyedCommand(use, short, method string, action keyedAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " RESOURCE KEY",
		Short: short,
		Long:  short + ", sending " + method + " to the item URL of RESOURCE",
		Args:  cobra.ExactArgs(2), //nolint:mnd // resource and key
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			result, err := action(cmd, client.Resource(args[0]), args[1])
			if err != nil {
				return err
			}

			return renderResult(cmd, method, result)
		},
	}
}
