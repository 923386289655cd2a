package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/uimeta/pkg/textscan"
)

const buttonStories = `import type { Meta, StoryObj } from '@storybook/react';
import { action } from '@storybook/addon-actions';
import { Button } from './button';

const meta: Meta<typeof Button> = {
	title: 'Components/Button',
	component: Button,
	argTypes: {
		variant: { control: 'select', options: ['primary', 'ghost'] },
		disabled: { control: 'boolean' },
	},
	parameters: { layout: 'centered' },
	decorators: [withTheme, withPadding],
};
export default meta;

type Story = StoryObj<typeof Button>;

/** The default call to action. */
export const Primary: Story = {
	args: { variant: 'primary', label: 'Click me' },
};

export const Disabled: Story = {
	args: { variant: 'primary', disabled: true },
	parameters: { chromatic: { disable: true } },
};

// Renders without any configured args.
export const Bare = () => <Button />;
`

func TestParseStoryMetadata_Stories(t *testing.T) {
	meta := ParseStoryMetadata("Button", buttonStories)

	assert.Equal(t, "Button", meta.Component)
	assert.Equal(t, 3, meta.TotalStories)
	assert.True(t, meta.HasExamples)
	assert.True(t, meta.HasInteractiveStories)

	require.Len(t, meta.Meta.Stories, 3)
	primary := meta.Meta.Stories[0]
	assert.Equal(t, "Primary", primary.Name)
	assert.Equal(t, "The default call to action.", primary.Description)
	assert.Equal(t, textscan.String("primary"), primary.Args["variant"])
	assert.Equal(t, textscan.String("Click me"), primary.Args["label"])
	assert.Contains(t, primary.Source, "export const Primary")

	disabled := meta.Meta.Stories[1]
	assert.Equal(t, textscan.Bool(true), disabled.Args["disabled"])
	require.NotNil(t, disabled.Parameters)

	bare := meta.Meta.Stories[2]
	assert.Equal(t, "Bare", bare.Name)
	assert.Equal(t, "Renders without any configured args.", bare.Description)
	assert.Empty(t, bare.Args)
}

func TestParseStoryMetadata_Meta(t *testing.T) {
	meta := ParseStoryMetadata("Button", buttonStories)

	assert.Equal(t, "Components/Button", meta.Meta.Title)
	assert.Equal(t, "Button", meta.Meta.Component)

	require.NotNil(t, meta.Meta.ArgTypes)
	variant := meta.Meta.ArgTypes["variant"]
	require.Equal(t, textscan.ValueObject, variant.Kind)
	assert.Equal(t, textscan.String("select"), variant.Obj["control"])

	require.NotNil(t, meta.Meta.Parameters)
	assert.Equal(t, textscan.String("centered"), meta.Meta.Parameters["layout"])

	assert.Equal(t, []string{"withTheme", "withPadding"}, meta.Meta.Decorators)
}

func TestParseStoryMetadata_TypedPrecedence(t *testing.T) {
	src := `export const Primary: Story = { args: { variant: 'typed' } };
export const Primary = () => <Button />;
`
	meta := ParseStoryMetadata("Button", src)

	require.Equal(t, 1, meta.TotalStories)
	assert.Equal(t, "Primary", meta.Meta.Stories[0].Name)
	assert.Equal(t, textscan.String("typed"), meta.Meta.Stories[0].Args["variant"])
}

func TestParseStoryMetadata_InlineDefaultExport(t *testing.T) {
	src := `export default {
	title: 'Forms/Input',
	component: Input,
};
export const Basic = () => <Input />;
`
	meta := ParseStoryMetadata("Input", src)
	assert.Equal(t, "Forms/Input", meta.Meta.Title)
	assert.Equal(t, "Input", meta.Meta.Component)
	assert.Equal(t, 1, meta.TotalStories)
	assert.False(t, meta.HasInteractiveStories)
}

func TestParseStoryMetadata_PlainFunctionStory(t *testing.T) {
	meta := ParseStoryMetadata("Button", "export const Primary = () => <Button />;")

	require.Equal(t, 1, meta.TotalStories)
	story := meta.Meta.Stories[0]
	assert.Equal(t, "Primary", story.Name)
	assert.Empty(t, story.Description)
	assert.Empty(t, story.Args)
	assert.True(t, meta.HasExamples)
	assert.False(t, meta.HasInteractiveStories)
}

func TestParseStoryMetadata_Empty(t *testing.T) {
	meta := ParseStoryMetadata("Button", "")

	assert.Equal(t, 0, meta.TotalStories)
	assert.False(t, meta.HasExamples)
	assert.False(t, meta.HasInteractiveStories)
	assert.Empty(t, meta.Meta.Stories)
	assert.Empty(t, meta.Meta.Title)
}

func TestExtractStorySource(t *testing.T) {
	src := `export const Grid = () => {
	return (
		<div className="grid">
			<Button />
		</div>
	);
};
function helper() { return (42); }
`
	examples := ExtractStorySource(src)
	require.Len(t, examples, 2)
	assert.Contains(t, examples[0], `<div className="grid">`)
	assert.Equal(t, "42", examples[1])
}

func TestExtractArgTypes(t *testing.T) {
	src := `export default { argTypes: {
		variant: { control: 'radio' },
		label: 'plain',
	} };`

	argTypes := ExtractArgTypes(src)
	require.Len(t, argTypes, 2)
	assert.Equal(t, textscan.String("radio"), argTypes["variant"]["control"])
	assert.Empty(t, argTypes["label"])

	assert.Empty(t, ExtractArgTypes("no arg types here"))
}

func TestDetectInteractivity(t *testing.T) {
	assert.True(t, DetectInteractivity(`onClick: action('clicked')`))
	assert.True(t, DetectInteractivity(`await userEvent.click(button)`))
	assert.True(t, DetectInteractivity(`play: async () => {}`))
	assert.False(t, DetectInteractivity(`export const Primary = () => <Button />;`))
}

func TestExtractDecorators(t *testing.T) {
	src := `decorators: [withTheme, (Story) => <div><Story /></div>]`
	decorators := ExtractDecorators(src)
	require.Len(t, decorators, 2)
	assert.Equal(t, "withTheme", decorators[0])
	assert.Contains(t, decorators[1], "(Story) =>")

	assert.Empty(t, ExtractDecorators("plain text"))
}
