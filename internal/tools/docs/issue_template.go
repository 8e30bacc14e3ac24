package docs

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/curator/pkg/constants"
	"github.com/agentstation/curator/pkg/errors"
	"github.com/agentstation/curator/pkg/library"
	"github.com/agentstation/curator/pkg/schema"
)

// Importance tells submitters how much a field matters.
type Importance string

// Instruction is the comment shown above a field in the submission form.
type Instruction struct {
	Field      string
	Comment    string
	Importance Importance
}

// LibraryInstructions covers every library field except authors, which
// have their own form. Order is form order.
var LibraryInstructions = []Instruction{
	{Field: "title", Importance: ImportanceRequired, Comment: "The name or title of the resource."},
	{Field: "description", Importance: ImportanceRecommended, Comment: "A short description of the resource. What is it for?"},
	{Field: "url", Importance: ImportanceRequired, Comment: "The URL of the resource. This could be a homepage, a marketplace link, a public repository, etc."},
	{Field: "compatibility", Importance: ImportanceRecommended, Comment: "Which GameMaker versions is this resource useful for? Delete any incompatible versions."},
	{Field: "tags", Importance: ImportanceRecommended, Comment: "Tags are used to group, filter, and sort resources by useful features. Delete any tags that don't apply to this resource. If you need additional tags, go ahead and provide them (use kebab case) and they'll be reviewed by project maintainers."},
	{Field: "githubUrl", Importance: ImportanceOptional, Comment: "The URL of the GitHub repository corresponding to this project, if there is one."},
}

// AuthorInstructions covers every author field.
var AuthorInstructions = []Instruction{
	{Field: library.FieldName, Importance: ImportanceRequired, Comment: "The name or handle the author goes by."},
	{Field: library.FieldWebsite, Importance: ImportanceRecommended, Comment: "The website this author is most closely affiliated with."},
	{Field: library.FieldDiscord, Importance: ImportanceOptional, Comment: "Discord username (make sure you include the part after the #)."},
	{Field: library.FieldTwitter, Importance: ImportanceOptional, Comment: "Twitter handle."},
	{Field: library.FieldGitHub, Importance: ImportanceOptional, Comment: "GitHub handle."},
	{Field: library.FieldAffiliations, Importance: ImportanceOptional, Comment: "Companies or communities the author belongs to, one per line starting with '- '."},
}

// CheckInstructions fails when the schema has a field without an
// instruction, or an instruction names a field the schema no longer has.
func CheckInstructions(s *schema.Schema) error {
	libFields := slices.DeleteFunc(s.LibraryFields(), func(f string) bool { return f == "authors" })
	if err := checkFields(schema.DefinitionLibrary, libFields, LibraryInstructions); err != nil {
		return err
	}
	return checkFields(schema.DefinitionAuthor, s.AuthorFields(), AuthorInstructions)
}

func checkFields(definition string, fields []string, instructions []Instruction) error {
	for _, f := range fields {
		if !slices.ContainsFunc(instructions, func(in Instruction) bool { return in.Field == f }) {
			return errors.NewValidationError(definition+"."+f, nil, "no submission form instruction for "+definition+" field "+f)
		}
	}
	for _, in := range instructions {
		if !slices.Contains(fields, in.Field) {
			return errors.NewValidationError(definition+"."+in.Field, nil, "submission form instruction for unknown "+definition+" field "+in.Field)
		}
	}
	return nil
}

// LibraryForm renders the YAML form for a library.
func LibraryForm(s *schema.Schema) string {
	compat := make([]string, 0, len(s.Compatibility()))
	for _, v := range s.Compatibility() {
		// quoted so that 8 stays a string
		compat = append(compat, strconv.Quote(v))
	}
	defaults := map[string]string{
		"compatibility": "[" + strings.Join(compat, ", ") + "]",
	}
	if tags := s.Tags(); len(tags) > 0 {
		defaults["tags"] = "\n  - " + strings.Join(tags, "\n  - ")
	}
	return "# Fill out the details below! Take care to make sure that the spacing stays consistent.\n\n" +
		form(LibraryInstructions, defaults)
}

// AuthorForm renders the YAML form for one author.
func AuthorForm() string {
	return form(AuthorInstructions, nil)
}

func form(instructions []Instruction, defaults map[string]string) string {
	entries := make([]string, 0, len(instructions))
	for _, in := range instructions {
		entry := fmt.Sprintf("# [%s] %s\n%s: %s", in.Importance, in.Comment, in.Field, defaults[in.Field])
		entries = append(entries, strings.TrimRight(entry, " "))
	}
	return strings.Join(entries, "\n\n")
}

// IssueTemplate renders the submission issue template for the schema. An
// empty label uses the standard submission label.
func IssueTemplate(s *schema.Schema, label string) (string, error) {
	if err := CheckInstructions(s); err != nil {
		return "", err
	}
	if label == "" {
		label = constants.SubmissionLabel
	}

	m := NewMarkdownBuffer()
	m.IssueFrontMatter(IssueFrontMatter{
		Name:   "Add a library",
		About:  "Add or edit a library",
		Labels: label,
	})

	m.H1("Add a new library, or edit an existing one!").LF().
		PlainText("Fill out the YAML below to provide all of the useful information about your library.").LF().
		Bold("⚠ YAML is case-sensitive and spacing-sensitive!").LF().
		Italic("(This will be processed by robots. If something goes wrong the robots will reply to tell you what happened.)").LF().
		CodeBlock(constants.FencedBlockLanguage, LibraryForm(s)).LF()

	m.H2("Author information").LF().
		PlainText("Give credit where it's due! Copy-paste the following for as many authors as you want to include.").LF().
		Bold("⚠ Copy the entire block, including those triple-backticks, to add more!").LF().
		Italic("💡 If you're already listed as an author on another resource, you only need to provide one unique identifier and the robot will do the rest!").LF()

	m.H3("Add/Update an Author!").LF().
		CodeBlock(constants.FencedBlockLanguage, AuthorForm()).LF()

	m.H3("Add/Update another Author!").LF().
		Italic("If you don't need this, you can leave it blank or delete it.").LF().
		Italic("If you need to add even more, just copy-paste this whole section to repeat it.").LF().
		CodeBlock(constants.FencedBlockLanguage, AuthorForm())

	if err := m.Build(); err != nil {
		return "", errors.WrapResource("compile", "issue template", "", err)
	}
	return m.String(), nil
}
