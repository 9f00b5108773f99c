package service

import "github.com/weibaohui/landingkit/internal/model"

const copywriterSystemPrompt = "You are an expert DTC copywriter who creates high-converting landing page content."

const (
	defaultBrandVoice     = `Professional, friendly, and benefit-focused. Speaks directly to the customer using "you" language.`
	defaultTargetAudience = "Health-conscious consumers aged 25-45 who value quality and convenience."
)

// trafficSourceGuidelines 按流量来源调整文案风格
var trafficSourceGuidelines = map[string]string{
	model.TrafficSourceDefault: "Use balanced, benefit-focused copy that works for general audiences.",
	model.TrafficSourceMeta: `Visitor came from a social media ad (Facebook/Instagram). Use:
- Emotional, story-driven headlines that stop the scroll
- Social proof and FOMO elements
- Lifestyle-focused imagery descriptions
- Casual, conversational tone
- Short, punchy sentences`,
	model.TrafficSourceGoogle: `Visitor searched for this product/solution. Use:
- Benefit-focused, solution-oriented headlines
- Comparison and "why us" messaging
- Feature specifications and details
- Trust signals and credibility markers
- Direct, informative tone`,
	model.TrafficSourceEmail: `Visitor is an existing subscriber/customer. Use:
- Exclusive, VIP-focused language
- Loyalty rewards and special offers
- "Welcome back" or "Just for you" messaging
- Personalized, warm tone
- Early access or insider benefits`,
	model.TrafficSourceTikTok: `Visitor came from TikTok. Use:
- Trendy, Gen-Z friendly language
- "As seen on TikTok" or viral references
- Authentic, unfiltered tone
- User-generated content feel
- Quick, snappy copy`,
}

// templatePrompts 各模板类型要求生成的区块
var templatePrompts = map[string]string{
	model.TemplateTypeLandingPage: `Generate content for a high-converting DTC landing page with these sections:

1. **hero** - Main hero section
   - headline: Powerful, benefit-driven headline (max 10 words)
   - subheadline: Supporting copy that expands on the headline (max 30 words)
   - ctaText: Primary call-to-action button text
   - ctaLink: "#buy" or "/shop"
   - badge: Optional urgency badge (e.g., "Limited Time", "New Launch")
   - productImage: "/placeholder-product.jpg"
   - productImageAlt: Alt text for the product image

2. **benefits** - Key benefits grid
   - title: Section title (e.g., "Why Choose Us")
   - benefits: Array of 3-4 benefits, each with:
     - icon: One of "shield", "lightning", "heart", "star", "truck", "refresh"
     - title: Benefit title (3-5 words)
     - description: Benefit description (15-25 words)

3. **socialProof** - Testimonials and trust
   - title: Section title
   - testimonials: Array of 3 testimonials, each with:
     - quote: Customer quote (20-40 words)
     - author: Customer name
     - role: Customer title or location
     - rating: 5
     - image: "/placeholder-avatar.jpg"

4. **productShowcase** - Product details
   - title: Section title
   - description: Product description (40-60 words)
   - features: Array of 4-5 feature strings
   - price: Product price
   - comparePrice: Original price (for showing discount)
   - images: Array of 3 image objects with src and alt

5. **finalCta** - Final call-to-action
   - headline: Compelling closing headline
   - subheadline: Final push copy (20-30 words)
   - ctaText: Button text
   - ctaLink: "#buy"
   - guarantee: Guarantee text (e.g., "30-Day Money Back Guarantee")`,

	model.TemplateTypeListicle: `Generate content for a listicle-style landing page:

1. **hero** - Article intro
   - headline: Listicle headline (e.g., "Top 5 Ways to...")
   - subheadline: Article teaser
   - badge: Article category

2. **benefits** - Key points preview
   - title: "What You'll Learn"
   - benefits: Array of 3 key takeaways

3. **socialProof** - Expert credibility
   - title: "Trusted by Experts"
   - testimonials: Array of 2-3 expert quotes

4. **finalCta** - Article conclusion CTA
   - headline: Action-oriented headline
   - subheadline: Summary of value
   - ctaText: Main CTA`,

	model.TemplateTypePDP: `Generate content for a product detail page:

1. **hero** - Product hero
   - headline: Product name with key benefit
   - subheadline: Product tagline
   - badge: Product badge (e.g., "Best Seller", "New")
   - productImage: "/placeholder-product.jpg"
   - productImageAlt: Product image alt text

2. **benefits** - Product benefits
   - title: "Features & Benefits"
   - benefits: Array of 4-5 product features

3. **socialProof** - Customer reviews
   - title: "Customer Reviews"
   - testimonials: Array of 3-5 customer reviews

4. **finalCta** - Add to cart section
   - headline: Urgency headline
   - subheadline: Scarcity or bonus copy
   - ctaText: "Add to Cart"
   - guarantee: Shipping/return policy`,
}

// styleGuides improve 动作的改写方向
var styleGuides = map[string]string{
	"more_urgent":       `Add urgency and scarcity. Use words like "now", "today", "limited", "don't miss".`,
	"more_emotional":    "Make it more emotionally compelling. Focus on feelings, aspirations, and transformations.",
	"more_professional": "Make it more professional and credible. Use data, specifics, and authoritative tone.",
	"shorter":           "Make it more concise. Cut unnecessary words while keeping the core message.",
	"longer":            "Expand with more details, benefits, and persuasive elements.",
}

const fullOutputFormat = `## OUTPUT FORMAT
Return a valid JSON object with this exact structure:
{
  "sections": [
    {
      "sectionId": "hero",
      "content": { /* section content matching the template requirements */ }
    },
    {
      "sectionId": "benefits",
      "content": { /* section content */ }
    }
  ],
  "suggestions": [
    "Optional suggestion 1 for improving conversion",
    "Optional suggestion 2"
  ]
}

IMPORTANT:
- Return ONLY valid JSON, no markdown code blocks or explanations
- Use the exact sectionId values specified in the template requirements
- Ensure all content is original and compelling
- Match the brand voice consistently across all sections
- Optimize for the specified traffic source`
