package latex

import "sort"

// SampleTemplates are the built-in starter resumes served to the editor.
var SampleTemplates = map[string]string{
	"minimal": `\documentclass[11pt,a4paper]{article}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{geometry}
\usepackage{enumitem}
\usepackage{titlesec}
\usepackage{xcolor}
\usepackage{hyperref}

\geometry{margin=0.75in}
\pagestyle{empty}
\setlist[itemize]{nosep, leftmargin=1.5em}

\definecolor{accent}{RGB}{44, 62, 80}
\titleformat{\section}{\large\bfseries\color{accent}}{}{0em}{}[\titlerule]
\titlespacing*{\section}{0pt}{1.5ex}{1ex}

\begin{document}

\begin{center}
    {\Huge\bfseries John Doe}\\[0.3em]
    \href{mailto:john.doe@email.com}{john.doe@email.com} |
    (555) 123-4567 |
    San Francisco, CA |
    \href{https://linkedin.com/in/johndoe}{linkedin.com/in/johndoe}
\end{center}

\section{Experience}
\textbf{Senior Software Engineer} \hfill \textit{Jan 2022 -- Present}\\
\textit{Tech Corp Inc., San Francisco, CA}
\begin{itemize}
    \item Led development of microservices architecture serving 1M+ daily users
    \item Reduced system latency by 40\% through optimization initiatives
    \item Mentored team of 5 junior developers
\end{itemize}

\textbf{Software Engineer} \hfill \textit{Jun 2019 -- Dec 2021}\\
\textit{StartupXYZ, Palo Alto, CA}
\begin{itemize}
    \item Built RESTful APIs using Python and Flask
    \item Implemented CI/CD pipelines reducing deployment time by 60\%
\end{itemize}

\section{Education}
\textbf{B.S. Computer Science} \hfill \textit{2015 -- 2019}\\
\textit{University of California, Berkeley}

\section{Skills}
\textbf{Languages:} Python, JavaScript, Go, SQL\\
\textbf{Technologies:} Docker, Kubernetes, AWS, React, PostgreSQL

\end{document}
`,
	"modern": `\documentclass[11pt,a4paper]{article}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\usepackage{geometry}
\usepackage{enumitem}
\usepackage{titlesec}
\usepackage{xcolor}
\usepackage{hyperref}

\geometry{margin=0.6in}
\pagestyle{empty}
\setlist[itemize]{nosep, leftmargin=1.5em}

\definecolor{accent}{RGB}{52, 152, 219}
\definecolor{darkgray}{RGB}{51, 51, 51}
\definecolor{lightgray}{RGB}{150, 150, 150}

\titleformat{\section}{\Large\bfseries\color{darkgray}}{}{0em}{}
\titlespacing*{\section}{0pt}{2ex}{1.5ex}

\hypersetup{colorlinks=true, urlcolor=accent}

\begin{document}

\begin{center}
    {\fontsize{28}{34}\selectfont\bfseries\color{darkgray} Sarah Johnson}\\[0.5em]
    {\color{lightgray} sarah.johnson@email.com \quad (555) 987-6543 \quad New York, NY}\\[0.3em]
    {\color{accent}\href{https://linkedin.com/in/sarahjohnson}{linkedin.com/in/sarahjohnson} \quad \href{https://github.com/sarahjohnson}{github.com/sarahjohnson}}
\end{center}

\vspace{1em}

\section{About Me}
Creative and detail-oriented Full Stack Developer with 5+ years of experience building scalable web applications.

\section{Experience}

\textbf{\color{darkgray}Lead Developer} \hfill {\color{lightgray}\textit{2021 -- Present}}\\
{\color{accent}Digital Solutions Inc.} -- New York, NY
\begin{itemize}
    \item Architected cloud-native applications on AWS achieving 99.9\% uptime
    \item Led agile team of 8 developers delivering 15+ product launches
\end{itemize}

\section{Education}

\textbf{\color{darkgray}M.S. Computer Science} \hfill {\color{lightgray}\textit{2016 -- 2018}}\\
{\color{accent}Columbia University} -- New York, NY

\section{Technical Skills}
JavaScript, TypeScript, Python, React, Node.js, AWS, Docker, PostgreSQL, MongoDB

\end{document}
`,
}

// TemplateNames lists the built-in templates in stable order.
func TemplateNames() []string {
	names := make([]string, 0, len(SampleTemplates))
	for name := range SampleTemplates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
