package prompt

import "github.com/fredcamaral/docdeck/internal/domain/entities"

const (
	defaultDensityInstruction  = "CONTENT APPROACH: Extract important information from each section, focusing on main concepts and key supporting details."
	defaultAudienceInstruction = "AUDIENCE ADAPTATION: Create slides suitable for a general audience with varying levels of background knowledge."
)

// DensityInstruction returns the content approach paragraph for a density.
// Values outside the enumeration get a general instruction.
func DensityInstruction(d entities.ContentDensity) string {
	switch d {
	case entities.DensityComprehensive:
		return "CONTENT APPROACH: Include thorough coverage of the document's content with supporting details and examples. " +
			"Incorporate all key sections and subsections while preserving detailed explanations, examples, and contextual information. " +
			"Create enough slides to properly present all relevant information without overcrowding. " +
			"For each topic, include both main concepts and their supporting context. " +
			"Keep slide content balanced with approximately 6-8 bullet points per slide when appropriate. " +
			"Avoid overloading individual slides with excessive text that might extend beyond visible boundaries."
	case entities.DensityBalanced:
		return "CONTENT APPROACH: Focus on the document's key information and essential supporting details. " +
			"Select content that effectively communicates the core message and critical evidence without including every minor point. " +
			"Group related concepts into well-organized slides that cover major topics while excluding peripheral information. " +
			"Emphasize content that directly supports the document's primary arguments or conclusions. " +
			"Use approximately 4-6 bullet points per slide for optimal readability."
	case entities.DensityConcise:
		return "CONTENT APPROACH: Distill the document to its most critical elements - key conclusions, primary arguments, and essential data points only. " +
			"Transform the content into the most efficient form possible while preserving meaning. " +
			"Consolidate major sections into a focused, streamlined presentation. " +
			"Exclude supplementary details, examples and explanations unless they're absolutely necessary for basic comprehension. " +
			"Prioritize high-level insights over detailed explanations. " +
			"Use a maximum of 3-4 bullet points per slide for maximum impact."
	default:
		return defaultDensityInstruction
	}
}

// AudienceInstruction returns the audience adaptation paragraph. Values
// outside the enumeration get a general-audience instruction.
func AudienceInstruction(a entities.TargetAudience) string {
	switch a {
	case entities.AudienceCasual:
		return "AUDIENCE ADAPTATION: Design for a casual audience with minimal prior knowledge. " +
			"Use everyday language and avoid industry jargon. " +
			"When technical concepts appear, provide simple explanations with relatable examples. " +
			"Focus on the 'what' and 'why' rather than complex details. " +
			"Organize information in a story-like structure that's easy to follow. " +
			"Use generous visuals and minimal text to maintain interest and engagement."
	case entities.AudienceEducational:
		return "AUDIENCE ADAPTATION: Prepare content for learning environments. " +
			"Balance theoretical frameworks with practical applications. " +
			"Include citations, sources, and methodological details where appropriate. " +
			"Structure content in a logical learning progression that builds understanding from fundamentals to advanced concepts. " +
			"Include examples, case studies, and key takeaways for effective knowledge transfer. " +
			"Use clear visual aids to reinforce learning objectives."
	case entities.AudienceSpecialized:
		return "AUDIENCE ADAPTATION: Craft material for domain experts with deep technical knowledge. " +
			"Maintain field-specific terminology and in-depth technical specifications. " +
			"Focus on implementation methodologies, technical workflows, and system architecture details. " +
			"Include data representations, code samples, and technical diagrams with appropriate context. " +
			"Organize content to highlight technical relationships and dependencies. " +
			"Maintain precision throughout without oversimplifying complex concepts."
	case entities.AudienceBusiness:
		return "AUDIENCE ADAPTATION: Tailor content for professionals focused on practical implementation and market application. " +
			"Emphasize business value, ROI, and competitive advantages. " +
			"Highlight actionable insights, real-world applications, and measurable outcomes. " +
			"Structure information with clear recommendations and implementation pathways. " +
			"Use concise formats like bullet points and executive summaries. " +
			"When presenting data, focus on trends and metrics with direct business relevance."
	case entities.AudienceLeadership:
		return "AUDIENCE ADAPTATION: Format for high-level decision-makers who need strategic insights quickly. " +
			"Focus exclusively on big-picture implications, strategic directions, and critical decision points. " +
			"Present information at a summary level, avoiding operational details unless essential for key decisions. " +
			"Structure content around opportunities, risks, and resource considerations. " +
			"Use headline-style statements with clear action orientation. " +
			"Limit each slide to no more than 3-4 key points for maximum clarity."
	default:
		return defaultAudienceInstruction
	}
}
