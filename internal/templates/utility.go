package templates

import "github.com/alexramsey92/ai-web-design-workbench/internal/stylelevel"

// classTable maps a slot in a section template to its class bundle.
type classTable map[string]string

// Presentation bundles for the utility variant. These are fixed per level
// and independent of the whitelist handed to the generation backend.
var utilityClasses = map[Section]map[stylelevel.Level]classTable{
	SectionHero: {
		stylelevel.Full: {
			"section":     "relative bg-gradient-to-r from-primary-600 to-primary-700 py-20 lg:py-32",
			"container":   "container mx-auto px-4 sm:px-6 lg:px-8",
			"content":     "max-w-4xl mx-auto text-center",
			"headline":    "text-4xl md:text-5xl lg:text-6xl font-bold text-white mb-6 leading-tight",
			"subheadline": "text-xl md:text-2xl text-white opacity-90 mb-8 leading-relaxed",
			"cta":         "inline-flex items-center justify-center px-8 py-4 text-lg font-semibold rounded-lg bg-white text-primary-600 shadow-xl hover:shadow-2xl hover:scale-105 transition-all duration-200",
		},
		stylelevel.Mid: {
			"section":     "bg-primary-600 py-16 lg:py-24",
			"container":   "container mx-auto px-4 lg:px-8",
			"content":     "max-w-3xl mx-auto text-center",
			"headline":    "text-4xl md:text-5xl font-bold text-white mb-6",
			"subheadline": "text-xl text-white mb-8",
			"cta":         "inline-flex px-6 py-3 text-base font-medium rounded-lg bg-white text-primary-600 hover:bg-gray-100 shadow",
		},
		stylelevel.Low: {
			"section":     "bg-primary-600 py-12",
			"container":   "container mx-auto px-4",
			"content":     "max-w-2xl mx-auto text-center",
			"headline":    "text-3xl font-bold text-white mb-4",
			"subheadline": "text-lg text-white mb-6",
			"cta":         "px-6 py-3 rounded-lg bg-white text-primary-600",
		},
	},
	SectionFeatures: {
		stylelevel.Full: {
			"section":     "py-20 lg:py-24 bg-white",
			"container":   "container mx-auto px-4 sm:px-6 lg:px-8",
			"heading":     "text-3xl md:text-4xl lg:text-5xl font-bold text-gray-900 text-center mb-16",
			"grid":        "grid grid-cols-1 md:grid-cols-3 gap-12",
			"card":        "text-center",
			"icon":        "w-16 h-16 mx-auto mb-6 text-primary-600",
			"title":       "text-xl font-semibold text-gray-900 mb-4",
			"description": "text-base text-gray-600 leading-relaxed",
		},
		stylelevel.Mid: {
			"section":     "py-16 bg-gray-50",
			"container":   "container mx-auto px-4 lg:px-8",
			"heading":     "text-3xl md:text-4xl font-bold text-gray-900 text-center mb-12",
			"grid":        "grid grid-cols-1 md:grid-cols-3 gap-8",
			"card":        "text-center",
			"icon":        "w-12 h-12 mx-auto mb-4 text-primary-600",
			"title":       "text-lg font-semibold text-gray-900 mb-3",
			"description": "text-base text-gray-600",
		},
		stylelevel.Low: {
			"section":     "py-12 bg-white",
			"container":   "container mx-auto px-4",
			"heading":     "text-2xl font-bold text-gray-900 text-center mb-8",
			"grid":        "grid grid-cols-1 md:grid-cols-3 gap-6",
			"card":        "text-center",
			"icon":        "w-12 h-12 mx-auto mb-4",
			"title":       "text-lg font-bold text-gray-900 mb-2",
			"description": "text-base text-gray-700",
		},
	},
	SectionCTA: {
		stylelevel.Full: {
			"section":     "py-20 bg-primary-600",
			"container":   "container mx-auto px-4 sm:px-6 lg:px-8",
			"content":     "max-w-3xl mx-auto text-center",
			"headline":    "text-4xl md:text-5xl font-bold text-white mb-6",
			"description": "text-xl text-white opacity-90 mb-8",
			"button":      "inline-flex items-center justify-center px-8 py-4 text-lg font-semibold rounded-lg bg-white text-primary-600 shadow-xl hover:shadow-2xl hover:scale-105 transition-all duration-200",
		},
		stylelevel.Mid: {
			"section":     "py-16 bg-primary-600",
			"container":   "container mx-auto px-4 lg:px-8",
			"content":     "max-w-2xl mx-auto text-center",
			"headline":    "text-3xl md:text-4xl font-bold text-white mb-4",
			"description": "text-lg text-white mb-6",
			"button":      "inline-flex px-6 py-3 text-base font-medium rounded-lg bg-white text-primary-600 hover:bg-gray-100 shadow",
		},
		stylelevel.Low: {
			"section":     "py-12 bg-primary-600",
			"container":   "container mx-auto px-4",
			"content":     "max-w-xl mx-auto text-center",
			"headline":    "text-2xl font-bold text-white mb-4",
			"description": "text-base text-white mb-6",
			"button":      "px-6 py-3 rounded-lg bg-white text-primary-600",
		},
	},
	SectionFooter: {
		stylelevel.Full: {
			"footer":    "bg-gray-900 text-white py-12",
			"container": "container mx-auto px-4 sm:px-6 lg:px-8",
			"content":   "text-center",
			"text":      "text-gray-400",
		},
		stylelevel.Mid: {
			"footer":    "bg-gray-900 text-white py-8",
			"container": "container mx-auto px-4",
			"content":   "text-center",
			"text":      "text-gray-400",
		},
		stylelevel.Low: {
			"footer":    "bg-gray-900 text-white py-8",
			"container": "container mx-auto px-4",
			"content":   "text-center",
			"text":      "text-gray-400",
		},
	},
}
