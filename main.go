package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newRootCommand(out io.Writer, errOut io.Writer) *cobra.Command {
	var verbose bool
	cmds := &commands{
		out:    out,
		logger: log.New(io.Discard, "pngme: ", 0),
	}

	root := &cobra.Command{
		Use:           filepath.Base(os.Args[0]),
		Short:         "Hide messages in PNG files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				cmds.logger.SetOutput(errOut)
			}
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each step to stderr")

	var output string
	encode := &cobra.Command{
		Use:   "encode <file.png> <chunk-type> <message>",
		Short: "Append a chunk holding a message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmds.encode(args[0], args[1], args[2], output)
		},
	}
	encode.Flags().StringVarP(&output, "output", "o", "", "write the result here instead of in place")

	decode := &cobra.Command{
		Use:   "decode <file.png> <chunk-type>",
		Short: "Print the message in the first chunk of a type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmds.decode(args[0], args[1])
		},
	}

	remove := &cobra.Command{
		Use:   "remove <file.png> <chunk-type>",
		Short: "Remove the first chunk of a type",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmds.remove(args[0], args[1])
		},
	}

	printCmd := &cobra.Command{
		Use:   "print <file.png>",
		Short: "List the chunks of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmds.print(args[0])
		},
	}

	root.AddCommand(encode, decode, remove, printCmd)
	return root
}

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		log.SetFlags(0)
		log.SetPrefix("pngme: ")
		log.Fatal(err)
	}
}
