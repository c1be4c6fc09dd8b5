package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson"

	"alcyxob/fitness-tracker/internal/criteria"
	"alcyxob/fitness-tracker/internal/repository/gormrepo"
	"alcyxob/fitness-tracker/internal/repository/mongo"
)

var criteriaTarget string

// criteriaCmd groups the list query helpers
var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Inspect list query parameters",
}

var criteriaParseCmd = &cobra.Command{
	Use:   "parse <query>",
	Short: "Show how a list query string is parsed and translated",
	Long: `Parse the query string of a list endpoint and print:

  - the parsed criteria primitives
  - the canonical query string
  - the MongoDB filter and find options
  - the SQL issued by the SQLite backend

Example:
  fitnessctl criteria parse 'filters[0][field]=name&filters[0][operator]=contains&filters[0][value]=Push&orderBy=createdAt&orderType=DESC'`,
	Args: cobra.ExactArgs(1),
	RunE: runCriteriaParse,
}

func runCriteriaParse(cmd *cobra.Command, args []string) error {
	values, err := url.ParseQuery(strings.TrimPrefix(args[0], "?"))
	if err != nil {
		return fmt.Errorf("parse query string: %w", err)
	}

	primitives := criteria.FromQuery(values)
	c, err := criteria.FromPrimitives(primitives)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	encoded, err := json.MarshalIndent(c.ToPrimitives(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "criteria:\n%s\n\n", encoded)
	fmt.Fprintf(out, "query:\n%s\n\n", criteria.ToQueryParams(c.ToPrimitives()).Encode())

	converter, err := mongo.CollectionConverter(criteriaTarget)
	if err != nil {
		return err
	}
	q, err := converter.Convert(c)
	if err != nil {
		return err
	}
	filter, err := bson.MarshalExtJSON(q.Filter, false, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "mongo filter:\n%s\n", filter)
	if len(q.Sort) > 0 {
		sort, err := bson.MarshalExtJSON(q.Sort, false, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "mongo sort: %s\n", sort)
	}
	if q.Limit != nil {
		fmt.Fprintf(out, "mongo limit: %d\n", *q.Limit)
	}
	if q.Skip != nil {
		fmt.Fprintf(out, "mongo skip: %d\n", *q.Skip)
	}

	// An empty in-memory database is enough to render the statement.
	db, err := gormrepo.Open(":memory:")
	if err != nil {
		return err
	}
	defer gormrepo.Close(db)

	sql, err := gormrepo.ExplainCriteria(db, criteriaTarget, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nsql:\n%s\n", sql)
	return nil
}
