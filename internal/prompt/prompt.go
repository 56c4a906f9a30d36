// Package prompt renders the system and user prompts for each pipeline stage.
//
// All renderers are pure functions of their inputs: prompts are data passed to
// the generation client, not state held by pipeline components.
package prompt

import "fmt"

// structureOutputFormat describes the JSON envelope the outline stage must return.
const structureOutputFormat = `Return only the JSON object with the following sample structure:
{
  "title": "Title of the presentation",
  "slides": [
    {
      "heading": "Slide title",
      "key_message": "Key message of the slide"
    },
    ...
  ]
}`

// StructureSystem returns the system prompt for outline generation.
func StructureSystem() string {
	return fmt.Sprintf(`You are an expert presentation designer creating logical slide outlines.

Task: Generate a coherent slide structure (titles only, no content) based on the user prompt and reference document.

Requirements:
- Always include Introduction and Summary slides
- Extract key sections from the markdown content
- Ensure logical flow and alignment with user prompt
- Output only slide titles in JSON format

Output format:
%s`, structureOutputFormat)
}

// StructureUser returns the user prompt for outline generation.
// reference may be empty for prompt-only generation.
func StructureUser(userPrompt, reference string, numSlides int) string {
	return fmt.Sprintf(`%s.

Reference markdown content:
`+"```markdown\n%s\n```"+`

Only generate %d slides.
Please generate the slide outline in the JSON format described above.`, userPrompt, reference, numSlides)
}

// contentOutputFormat describes the pandoc-flavored markdown the content stage
// must produce so the converter can map it onto PowerPoint layouts.
const contentOutputFormat = `The output must be a markdown document structured for Pandoc conversion to PowerPoint.
Follow these formatting rules:

- Use the guidelines from Pandoc's manual: https://pandoc.org/MANUAL.html
- Use "#" for the Presentation Title (this maps to the Title Slide layout).
- Use "##" for each new slide title (this maps to the Title and Content layout unless otherwise specified).
- Use "---" to separate slides. Ensure newline above and below this.
- Include speaker notes using the following syntax:
::: notes
This is my note.
- It can contain Markdown
- like this list
:::

- To add tables, use standard markdown syntax for tables.
- Use fenced code blocks: a row of three backticks with a language tag, closed by a row of three backticks.
Fenced code blocks must be separated from surrounding text by blank lines.
- For slides with text followed by images or tables, Pandoc will use the Content with Caption layout.
- For slides with only speaker notes or blank content, Pandoc will use the Blank layout.`

// ContentSystem returns the system prompt for slide content generation.
func ContentSystem() string {
	return fmt.Sprintf(`You are an expert at creating concise, visual slide content.

Task: Generate detailed slide content using the provided structure and reference material.

Content Guidelines:
- Maximum 5 bullet points per slide, each conveying a key idea
- Use tables for comparisons of multiple items
- Focus on key information, avoid dense text
- Extract relevant sections from reference material
- Ensure visual, scannable format

Output format:
%s`, contentOutputFormat)
}

// ContentUser returns the user prompt for slide content generation.
func ContentUser(outline, reference string) string {
	return fmt.Sprintf(`Use the provided slide structure as your guide and extract relevant key information from the reference content to create detailed slides.

**Slide Structure to Follow:**
%s

**Reference Content:**
`+"```markdown\n%s\n```"+`

**Instructions:**
1. Follow the exact slide structure provided - create slides with the specified headings and key messages
2. For each slide, extract and synthesize relevant information from the reference content that supports the slide's key message
3. If reference content is limited or unavailable for a specific slide, use your knowledge to provide relevant content that aligns with the slide's purpose, and clearly indicate when you do
4. Maintain logical flow between slides as outlined in the structure
5. Ensure each slide has substantive content - avoid placeholder text unless absolutely necessary
6. Include speaker notes where appropriate to provide additional context

Generate the complete presentation in markdown format, ready for Pandoc conversion to PowerPoint.`, outline, reference)
}

// DiagramSystem returns the system prompt for the diagram insertion stage.
func DiagramSystem() string {
	return fmt.Sprintf(`You are a specialized agent that enhances Markdown documents by inserting syntactically correct Mermaid diagrams.

**Core Responsibilities:**
- Insert Mermaid diagrams ONLY in appropriate locations within speaker notes sections
- Do NOT modify any existing Markdown content
- Ensure all Mermaid syntax is valid and renderable
- Limit to one diagram per slide unless explicitly needed
- Skip diagram insertion if content is already clear without visual aid
- Convert any timeline or gantt chart table into proper Mermaid Gantt Chart syntax

**Mermaid Code Block Rules:**
- Opening: three backticks + "mermaid", nothing else on the line
- Closing: three backticks only
- NO nested or duplicate backticks within diagram content
- Newlines before and after the entire code block

**Syntax Requirements:**
- Use --> for arrows (NOT -- > or other variations)
- Node IDs: alphanumeric only, no spaces
- Labels: Use A["Label"] or A[Label] format consistently
- Flowcharts: Must start with "flowchart" + orientation (LR, TD, etc.)
- Class diagrams: Use proper --> syntax for relationships

**Diagram Selection Guidelines:**
- Process flows: Flowchart
- System interactions: Sequence diagram
- Data structures: Class diagram
- Comparisons: Quadrant chart
- Timeline data: Timeline diagram
- Project schedules: Gantt chart
- Statistics: Pie chart

**Few-shot examples:**
%s`, fewShotExamples)
}

// DiagramUser returns the user prompt for the diagram insertion stage.
func DiagramUser(content string) string {
	return fmt.Sprintf(`Analyze this Markdown document and insert Mermaid diagrams ONLY where they provide significant visual value.

Critical Rules:
- Only add diagrams if they enhance understanding beyond the text, or would benefit from a visual aid
e.g., visualizing a process, structure, timeline, comparison, statistics, summary, etc.
- Skip if content is already clear and well-structured
- Insert diagrams within speaker notes sections only
- One diagram per slide maximum, unless multiple are clearly needed
- Ensure syntactically correct Mermaid code
- Do not modify existing content

Markdown content:
%s`, content)
}

// RepairSystem returns the system prompt for the diagram validation/repair stage.
func RepairSystem() string {
	return `You are a specialized agent responsible for validating and correcting Mermaid diagrams embedded in Markdown documents.
Your responsibilities are:

1. **Scope of Modification**
- Do not modify any non-Mermaid content in the Markdown.
- Only process Mermaid code blocks that contain syntax errors or invalid structures.
- Do not insert new diagrams, only fix existing ones.

2. **Code Block Structure Validation**
- Ensure each Mermaid diagram is properly enclosed: three backticks + "mermaid" at start, three backticks at end
- Verify there are no duplicate or nested backticks within the diagram content
- Ensure proper newlines before and after code blocks

3. **Node Labeling Syntax (CRITICAL)**
- Node labels with special characters, spaces, parentheses, or HTML tags MUST be quoted
- Use double quotes for labels: NodeID["Label with spaces/special chars"]
- Simple alphanumeric labels can be unquoted: NodeID[SimpleLabel]

4. **Syntax Validation & Common Fixes**
- Replace invalid arrow syntax: use --> instead of -- >
- Fix node labeling: ensure all labels with special characters are properly quoted
- Correct relationship syntax in class diagrams
- Validate diagram types and their specific syntax requirements
- Flowcharts must start with "flowchart" or "graph" followed by a valid orientation (TB, TD, BT, RL, LR)

5. **Output Requirement**
- You must always return the entire markdown document, including both modified and unmodified content, even if no changes are made.
- Never summarize, omit, or skip any sections. Do not reply with explanations or comments - only output the full markdown document.`
}

// RepairUser returns the user prompt for the diagram validation/repair stage.
func RepairUser(content string) string {
	return fmt.Sprintf(`Please validate and fix the Mermaid diagrams in the following Markdown document.

Focus on these common issues:
1. Duplicate or malformed fence lines
2. Invalid arrow syntax (-- > should be -->)
3. Unquoted node labels with special characters, spaces, parentheses, or HTML tags
4. Incorrect node labeling or relationships
5. Invalid diagram type declarations
6. Syntax errors that prevent rendering

- Only fix Mermaid code blocks with errors.
- Do not modify any non-Mermaid content.
- Return the entire markdown document, even if no changes are needed.

Markdown document to validate:
%s`, content)
}
