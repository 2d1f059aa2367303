package content

// Default returns the agency's built-in site copy.
func Default() Snapshot {
	return Snapshot{
		Stats: Stats{Clients: 92, Projects: 265, SupportHours: 24, Satisfaction: 100},
		Services: []Service{
			{Icon: "📱", Title: "Social Media Management", Desc: "Content, growth, community engineered for revenue."},
			{Icon: "💻", Title: "Website Development", Desc: "SEO-ready, fast, conversion-optimized."},
			{Icon: "🎨", Title: "Branding & Design", Desc: "Unforgettable identity & assets."},
			{Icon: "📊", Title: "Digital Marketing", Desc: "ROI-obsessed SEO, PPC, email, automation."},
			{Icon: "📸", Title: "Content Creation", Desc: "Shoot, edit, publish for reach & growth."},
			{Icon: "🚀", Title: "Growth Strategy", Desc: "Roadmaps to scale what works."},
		},
		Process: []ProcessStep{
			{Title: "Discover", Desc: "Goals, audience, offer, constraints."},
			{Title: "Plan", Desc: "Roadmap, metrics, timelines."},
			{Title: "Build", Desc: "Content, site, automation."},
			{Title: "Launch", Desc: "Go live, QA, analytics."},
			{Title: "Scale", Desc: "Iterate, optimize, grow."},
		},
		Portfolio: []PortfolioItem{
			{Title: "E-Commerce Revolution", Cat: "Web + Marketing", URL: "#", Img: "https://images.unsplash.com/photo-1520975682031-126340c31f27?q=80&w=1400&auto=format&fit=crop"},
			{Title: "Brand Transformation", Cat: "Branding + Social", URL: "#", Img: "https://images.unsplash.com/photo-1545235617-9465d2a55698?q=80&w=1400&auto=format&fit=crop"},
			{Title: "Digital Domination", Cat: "A–Z Strategy", URL: "#", Img: "https://images.unsplash.com/photo-1498050108023-c5249f4df085?q=80&w=1400&auto=format&fit=crop"},
			{Title: "Social Takeover", Cat: "Content + Community", URL: "#", Img: "https://images.unsplash.com/photo-1515378791036-0648a3ef77b2?q=80&w=1400&auto=format&fit=crop"},
		},
		FAQs: []FAQ{
			{Q: "How long does SEO take to show results?", A: "Expect traction in 8–12 weeks; strong compounding after 3–6 months. New domains/competitive niches can take longer."},
			{Q: "Do you guarantee #1 rankings?", A: "No ethical team can. We guarantee best-practice execution, clear strategy, and measurable growth in traffic, leads and revenue."},
			{Q: "What’s included in your SEO?", A: "Technical fixes (CWV, sitemaps, robots, schema), on-page (keywords, internal links, content), content planning, and monthly reporting."},
			{Q: "Local SEO & Google Business Profile?", A: "Yes—profile setup/optimization, categories/services, posts, reviews strategy, and citation cleanup for NAP consistency."},
			{Q: "Do you build backlinks?", A: "We focus on quality links via content assets, digital PR, partnerships and citations—never spam or paid link farms."},
			{Q: "Paid ads vs SEO—what’s better?", A: "SEO compounds and lowers CAC long-term; paid ads are fast for testing and scale. Best results come from combining both."},
			{Q: "Content cadence for growth?", A: "Typical: 2–6 SEO pages/mo + supporting posts. Social plans include 10–15 edited videos/mo + posts/stories per scope."},
			{Q: "Will the website be SEO-ready and fast?", A: "Yes. Performance-first build, image optimization, caching, schema, clean IA, and Core Web Vitals targets."},
			{Q: "Do you integrate analytics & tracking?", A: "GA4, Search Console, events/conversions. Optional: Hotjar/Clarity, Meta/Google/LinkedIn pixels."},
			{Q: "Contracts & pricing?", A: "Social: 6–12 months. Websites: 1-year maintenance. Clear scope, timeline and fixed monthly/project fee."},
			{Q: "Who owns the assets/code?", A: "You do. All creative, content and code produced for your project are yours upon payment per agreement."},
			{Q: "How quickly can we start?", A: "Usually within 3–5 business days after kickoff and access handover."},
		},
	}
}
