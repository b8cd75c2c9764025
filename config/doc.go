// Package config loads request collections: YAML or JSON files that name
// requests to be sent with http.Client.RequestJSON.
//
// A collection file looks like:
//
//	variables:
//	  host: https://api.example.com
//	requests:
//	  search:
//	    method: GET
//	    url: "{{host}}/items"
//	    params: {q: shoes}
//	    extract: {count: $.count}
//	    schema: {type: object, required: [count]}
//	  create:
//	    method: POST
//	    url: "{{host}}/items"
//	    params: {name: "{{name}}"}
//
// Basic Usage:
//
//	c, err := config.LoadCollection("requests.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if errs := config.ValidateCollection(c); len(errs) > 0 {
//	    log.Fatal(errs[0])
//	}
//	req, err := c.Resolve("create", map[string]string{"name": "boot"})
//
// Variable Substitution:
//
// Placeholders of the form {{name}} are replaced in URLs and parameter
// values. Variables passed to Resolve override the collection's own.
package config
