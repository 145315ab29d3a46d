package service

import "github.com/unclebandit/campaign-generator/internal/model"

const campaignPromptTemplate = `Generate a comprehensive marketing campaign strategy for the following product/service.

Product Name: {product_name}
Description: {product_description}
Target Audience: {target_audience}
Primary Goal: {goal}

Create a detailed plan covering these key areas:
1. Core Messaging: Develop catchy taglines and clear value propositions.
2. Target Persona: Create a detailed profile of the ideal customer.
3. Social Media Strategy: Recommend a primary platform, define content pillars, and provide 3 sample posts with text and AI image generation prompts.
4. Email Marketing: Suggest compelling subject lines and draft a sample email.
5. Blog Strategy: Propose relevant blog post ideas and create a sample outline for one.

Your response must be a valid JSON object that strictly adheres to the provided schema.`

// BuildPrompt formats a campaign request into the instruction sent to the model.
// Empty fields still yield a complete prompt.
func BuildPrompt(req model.CampaignRequest) string {
	return RenderTemplate(campaignPromptTemplate, map[string]string{
		"product_name":        req.ProductName,
		"product_description": req.ProductDescription,
		"target_audience":     req.TargetAudience,
		"goal":                req.Goal,
	})
}
