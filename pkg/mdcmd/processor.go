package mdcmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/metaforge-io/metaforge/pkg/client"
	"github.com/metaforge-io/metaforge/pkg/logger"
	"github.com/metaforge-io/metaforge/pkg/parser"
	"github.com/metaforge-io/metaforge/pkg/sliceutil"
)

var processorLog = logger.New("mdcmd:processor")

// Processor parses markdown command documents and previews, validates, or
// executes them against the platform. Name lookups are cached per Processor,
// so commands later in a document see elements created by earlier ones
// without extra round trips.
type Processor struct {
	glossaries *client.GlossaryClient
	terms      *client.TermClient
	categories *client.CategoryClient
	projects   *client.ProjectClient
	blueprints *client.BlueprintClient

	upsert bool
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithUpsert makes Update commands create elements that do not exist yet.
// Without it, updating a missing element is an error.
func WithUpsert() ProcessorOption {
	return func(p *Processor) { p.upsert = true }
}

// NewProcessor creates a processor over an established platform client.
// A nil client is allowed for the display directive, which never contacts
// the platform.
func NewProcessor(c *client.Client, opts ...ProcessorOption) *Processor {
	p := &Processor{}
	if c != nil {
		p.glossaries = c.Glossaries()
		p.terms = c.Terms()
		p.categories = c.Categories()
		p.projects = c.Projects()
		p.blueprints = c.SolutionBlueprints()
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Result is the outcome of processing one document.
type Result struct {
	// Output is the rendered markdown for display and process directives,
	// or the rendered report for validate.
	Output string
	// Report carries the per-command findings.
	Report ValidationReport
}

// ProcessDocument runs one markdown document under the given directive.
//
// An error return means the document could not be handled at all (unreadable
// frontmatter, platform connection failure). Per-command problems are
// reported through the Result's Report; for the process directive, the first
// failing command also stops execution so documents are never half-applied
// beyond the failing point.
func (p *Processor) ProcessDocument(ctx context.Context, content string, directive Directive) (*Result, error) {
	doc, err := parser.ExtractFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("cannot parse document frontmatter: %w", err)
	}

	// A document can pin itself to a weaker directive in its frontmatter,
	// e.g. a draft marked `directive: validate` stays read-only even when
	// run under process. Escalation is never allowed.
	if override := doc.StringField("directive"); override != "" {
		d, err := ParseDirective(override)
		if err != nil {
			return nil, fmt.Errorf("frontmatter: %w", err)
		}
		if directiveRank[d] < directiveRank[directive] {
			directive = d
		}
	}

	commands := ExtractCommands(doc.Content)
	result := &Result{Report: ValidationReport{Commands: len(commands)}}
	if len(commands) == 0 {
		result.Output = result.Report.Render()
		return result, nil
	}

	// The frontmatter can set a default glossary for term and category
	// commands that omit one.
	defaultGlossary := doc.StringField("glossary")
	for i := range commands {
		cmd := &commands[i]
		if defaultGlossary != "" && (cmd.ObjectType == ObjectTerm || cmd.ObjectType == ObjectCategory) {
			if _, ok := cmd.Attributes["Glossary Name"]; !ok {
				cmd.Attributes["Glossary Name"] = defaultGlossary
			}
		}
	}

	for i := range commands {
		cmd := &commands[i]
		if err := validateAttributes(cmd); err != nil {
			result.Report.AddError(cmd, err)
			continue
		}
		if _, _, err := cmd.EffectiveDates(); err != nil {
			result.Report.AddError(cmd, err)
		}
	}

	switch directive {
	case DirectiveDisplay:
		result.Output = RenderCommands(commands)
		return result, nil

	case DirectiveValidate:
		for i := range commands {
			cmd := &commands[i]
			if cmd.Name() == "" {
				// Schema validation already reported the missing name.
				continue
			}
			if err := p.checkExistence(ctx, cmd, &result.Report); err != nil {
				return nil, err
			}
		}
		result.Output = result.Report.Render()
		return result, nil

	case DirectiveProcess:
		if err := result.Report.Err(); err != nil {
			return nil, fmt.Errorf("document failed validation: %w", err)
		}
		for i := range commands {
			cmd := &commands[i]
			if err := p.checkExistence(ctx, cmd, &result.Report); err != nil {
				return nil, err
			}
			if err := result.Report.Err(); err != nil {
				return nil, fmt.Errorf("document failed validation: %w", err)
			}
			if err := p.execute(ctx, cmd, &result.Report); err != nil {
				result.Report.AddError(cmd, err)
				result.Output = RenderCommands(commands[:i+1])
				return result, fmt.Errorf("processing stopped at line %d: %w", cmd.SourceLine+1, err)
			}
		}
		result.Output = RenderCommands(commands)
		return result, nil

	default:
		return nil, fmt.Errorf("unknown directive %q", directive)
	}
}

// checkExistence resolves whether the command's element already exists and
// rewrites the action for idempotency: creating an existing element becomes
// an update, updating a missing one becomes a create when upsert is on and
// an error otherwise.
func (p *Processor) checkExistence(ctx context.Context, cmd *Command, report *ValidationReport) error {
	stub, err := p.resolveElement(ctx, cmd)
	exists := err == nil
	if err != nil && !client.IsNotFound(err) {
		// Lookup itself failed; the platform is unreachable or refused us.
		return err
	}

	switch {
	case cmd.Action == ActionCreate && exists:
		report.AddNotice(cmd, "already exists as %s, will update instead", stub.GUID)
		cmd.Action = ActionUpdate
		cmd.Attributes["GUID"] = stub.GUID
		if stub.QualifiedName != "" {
			cmd.Attributes["Qualified Name"] = stub.QualifiedName
		}
	case cmd.Action == ActionUpdate && !exists:
		if p.upsert {
			report.AddNotice(cmd, "does not exist, will create")
			cmd.Action = ActionCreate
		} else {
			report.AddError(cmd, errors.New("element does not exist (use upsert to create on update)"))
		}
	case cmd.Action == ActionUpdate && exists && cmd.GUID() == "":
		cmd.Attributes["GUID"] = stub.GUID
	}
	return nil
}

// resolveElement finds the element named by the command, consulting the
// per-type resolver cache before the remote by-name lookup.
func (p *Processor) resolveElement(ctx context.Context, cmd *Command) (client.ElementStub, error) {
	resolver := p.resolverFor(cmd.ObjectType)
	if stub, ok := resolver.Known(cmd.Name()); ok {
		return stub, nil
	}
	return resolver.Resolve(ctx, cmd.Name())
}

func (p *Processor) resolverFor(objectType ObjectType) *client.Resolver {
	switch objectType {
	case ObjectGlossary:
		return p.glossaries.Resolver()
	case ObjectTerm:
		return p.terms.Resolver()
	case ObjectCategory:
		return p.categories.Resolver()
	case ObjectProject:
		return p.projects.Resolver()
	default:
		return p.blueprints.Resolver()
	}
}

// execute performs the platform call for one command and records provenance
// (GUID, qualified name) back onto the command so the rendered document
// round-trips as an update document. The report notice records the action as
// it was executed, before the provenance rewrite turns it into an update.
func (p *Processor) execute(ctx context.Context, cmd *Command, report *ValidationReport) error {
	var (
		guid string
		err  error
	)
	switch cmd.ObjectType {
	case ObjectGlossary:
		guid, err = p.executeGlossary(ctx, cmd)
	case ObjectTerm:
		guid, err = p.executeTerm(ctx, cmd)
	case ObjectCategory:
		guid, err = p.executeCategory(ctx, cmd)
	case ObjectProject:
		guid, err = p.executeProject(ctx, cmd)
	case ObjectBlueprint:
		guid, err = p.executeBlueprint(ctx, cmd)
	default:
		return fmt.Errorf("unsupported object type %q", cmd.ObjectType)
	}
	if err != nil {
		return err
	}

	processorLog.Printf("Executed %s %s %q -> %s", cmd.Action, cmd.ObjectType, cmd.Name(), guid)
	report.AddNotice(cmd, "executed -> %s", guid)

	cmd.Attributes["GUID"] = guid
	if cmd.QualifiedName() == "" {
		cmd.Attributes["Qualified Name"] = resolveQualifiedName(cmd)
	}
	// The document now describes an existing element.
	cmd.Action = ActionUpdate
	return nil
}

func (p *Processor) executeGlossary(ctx context.Context, cmd *Command) (string, error) {
	props := client.GlossaryProperties{
		DisplayName:   cmd.Name(),
		QualifiedName: resolveQualifiedName(cmd),
		Description:   cmd.Attributes["Description"],
		Language:      cmd.Attributes["Language"],
		Usage:         cmd.Attributes["Usage"],
	}
	if cmd.Action == ActionCreate {
		return p.glossaries.Create(ctx, props)
	}
	return cmd.GUID(), p.glossaries.Update(ctx, cmd.GUID(), props, true)
}

func (p *Processor) executeTerm(ctx context.Context, cmd *Command) (string, error) {
	from, to, err := cmd.EffectiveDates()
	if err != nil {
		return "", err
	}
	props := client.TermProperties{
		DisplayName:   cmd.Name(),
		QualifiedName: resolveQualifiedName(cmd),
		Summary:       cmd.Attributes["Summary"],
		Description:   cmd.Attributes["Description"],
		Abbreviation:  cmd.Attributes["Abbreviation"],
		Examples:      cmd.Attributes["Examples"],
		Usage:         cmd.Attributes["Usage"],
		Status:        client.TermStatus(cmd.Attributes["Status"]),
		EffectiveFrom: from,
		EffectiveTo:   to,
	}

	var guid string
	if cmd.Action == ActionCreate {
		glossary, err := p.glossaries.Resolver().Resolve(ctx, cmd.Attributes["Glossary Name"])
		if err != nil {
			return "", fmt.Errorf("cannot resolve glossary %q: %w", cmd.Attributes["Glossary Name"], err)
		}
		guid, err = p.terms.Create(ctx, glossary.GUID, props)
		if err != nil {
			return "", err
		}
	} else {
		guid = cmd.GUID()
		if err := p.terms.Update(ctx, guid, props, true); err != nil {
			return "", err
		}
	}

	for _, categoryName := range sliceutil.Deduplicate(cmd.ListAttribute("Categories")) {
		category, err := p.categories.Resolver().Resolve(ctx, categoryName)
		if err != nil {
			return "", fmt.Errorf("cannot resolve category %q: %w", categoryName, err)
		}
		if err := p.terms.AddToCategory(ctx, guid, category.GUID); err != nil {
			return "", err
		}
	}
	return guid, nil
}

func (p *Processor) executeCategory(ctx context.Context, cmd *Command) (string, error) {
	props := client.CategoryProperties{
		DisplayName:   cmd.Name(),
		QualifiedName: resolveQualifiedName(cmd),
		Description:   cmd.Attributes["Description"],
	}

	var guid string
	if cmd.Action == ActionCreate {
		glossary, err := p.glossaries.Resolver().Resolve(ctx, cmd.Attributes["Glossary Name"])
		if err != nil {
			return "", fmt.Errorf("cannot resolve glossary %q: %w", cmd.Attributes["Glossary Name"], err)
		}
		guid, err = p.categories.Create(ctx, glossary.GUID, props)
		if err != nil {
			return "", err
		}
	} else {
		guid = cmd.GUID()
		if err := p.categories.Update(ctx, guid, props, true); err != nil {
			return "", err
		}
	}

	if parentName, ok := cmd.Attributes["In Category"]; ok {
		parent, err := p.categories.Resolver().Resolve(ctx, parentName)
		if err != nil {
			return "", fmt.Errorf("cannot resolve parent category %q: %w", parentName, err)
		}
		if err := p.categories.SetParent(ctx, guid, parent.GUID); err != nil {
			return "", err
		}
	}
	return guid, nil
}

func (p *Processor) executeProject(ctx context.Context, cmd *Command) (string, error) {
	props := client.ProjectProperties{
		DisplayName:   cmd.Name(),
		QualifiedName: resolveQualifiedName(cmd),
		Identifier:    cmd.Attributes["Identifier"],
		Description:   cmd.Attributes["Description"],
		Status:        cmd.Attributes["Status"],
		Phase:         cmd.Attributes["Phase"],
	}
	if cmd.Action == ActionCreate {
		return p.projects.Create(ctx, props)
	}
	return cmd.GUID(), p.projects.Update(ctx, cmd.GUID(), props, true)
}

func (p *Processor) executeBlueprint(ctx context.Context, cmd *Command) (string, error) {
	props := client.SolutionBlueprintProperties{
		DisplayName:       cmd.Name(),
		QualifiedName:     resolveQualifiedName(cmd),
		Description:       cmd.Attributes["Description"],
		VersionIdentifier: cmd.Attributes["Version Identifier"],
	}
	if cmd.Action == ActionCreate {
		return p.blueprints.Create(ctx, props)
	}
	return cmd.GUID(), p.blueprints.Update(ctx, cmd.GUID(), props, true)
}
