package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestAddToggleFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		expectedValue   bool
		expectedChanged bool
	}{
		{name: "DefaultFalse", arguments: []string{}, expectedValue: false, expectedChanged: false},
		{name: "ImplicitTrue", arguments: []string{"--commit"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitYes", arguments: []string{"--commit", "yes"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitTrueUppercase", arguments: []string{"--commit", "TRUE"}, expectedValue: true, expectedChanged: true},
		{name: "ExplicitNo", arguments: []string{"--commit", "no"}, expectedValue: false, expectedChanged: true},
		{name: "AttachedNo", arguments: []string{"--commit=no"}, expectedValue: false, expectedChanged: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{Use: "add"}

			var commitValue bool
			AddToggleFlag(command.Flags(), &commitValue, "commit", "", false, "Commit the file")

			parseError := command.ParseFlags(NormalizeToggleArguments(command, testCase.arguments))
			require.NoError(t, parseError)
			require.Equal(t, testCase.expectedValue, commitValue)

			flag := command.Flags().Lookup("commit")
			require.NotNil(t, flag)
			require.Equal(t, testCase.expectedChanged, flag.Changed)
		})
	}
}

func TestAddToggleFlagRejectsInvalidValues(t *testing.T) {
	command := &cobra.Command{Use: "add"}

	var commitValue bool
	AddToggleFlag(command.Flags(), &commitValue, "commit", "", false, "Commit the file")

	parseError := command.ParseFlags([]string{"--commit=maybe"})
	require.Error(t, parseError)
	require.False(t, commitValue)
}

func TestNormalizeToggleArgumentsLeavesPositionalWords(t *testing.T) {
	command := &cobra.Command{Use: "add"}
	AddToggleFlag(command.Flags(), nil, "commit", "c", false, "Commit the file")

	normalized := NormalizeToggleArguments(command, []string{"--commit", "notes.md", "-c", "no", "--", "--commit", "yes"})
	require.Equal(t, []string{"--commit", "notes.md", "-c=no", "--", "--commit", "yes"}, normalized)
}

func TestNormalizeToggleArgumentsFindsSubcommandFlags(t *testing.T) {
	rootCommand := &cobra.Command{Use: "pending"}
	addCommand := &cobra.Command{Use: "add"}
	AddToggleFlag(addCommand.Flags(), nil, "commit", "", false, "Commit the file")
	addCommand.Flags().String("path", "", "Directory")
	rootCommand.AddCommand(addCommand)

	normalized := NormalizeToggleArguments(rootCommand, []string{"add", "--commit", "yes", "--path", "no"})
	require.Equal(t, []string{"add", "--commit=yes", "--path", "no"}, normalized)
}

func TestFormatToggleUsageHighlightsDefault(t *testing.T) {
	require.Equal(t, "`<yes|NO>` Commit the file", formatToggleUsage(" Commit the file ", false))
	require.Equal(t, "`<YES|no>`", formatToggleUsage("", true))
}
