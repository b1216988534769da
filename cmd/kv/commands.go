package kv

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "get", args[0])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "set", args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "del", args[0])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	pexpireCmd = &cobra.Command{
		Use:   "pexpire [key] [ttl_ms]",
		Short: "Sets a key's expiration in milliseconds (negative clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "pexpire", args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	pttlCmd = &cobra.Command{
		Use:   "pttl [key]",
		Short: "Reads a key's remaining TTL in milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "pttl", args[0])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Lists every key in the keyspace",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			v, err := client.Call(clientTimeout, "keys")
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	zaddCmd = &cobra.Command{
		Use:   "zadd [key] [score] [name]",
		Short: "Adds or updates a member's score in a sorted set",
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "zadd", args[0], args[1], args[2])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	zremCmd = &cobra.Command{
		Use:   "zrem [key] [name]",
		Short: "Removes a member from a sorted set",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "zrem", args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	zscoreCmd = &cobra.Command{
		Use:   "zscore [key] [name]",
		Short: "Reads a member's score from a sorted set",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "zscore", args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}

	zqueryCmd = &cobra.Command{
		Use:   "zquery [key] [score] [name] [offset] [limit]",
		Short: "Range-scans a sorted set starting at (score, name)",
		Args:  cobra.ExactArgs(5),
		RunE: func(_ *cobra.Command, args []string) error {
			v, err := client.Call(clientTimeout, "zquery", args[0], args[1], args[2], args[3], args[4])
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		},
	}
)
