package scaffold

import "github.com/Project-Sylos/Studio/internal/types"

var portletFiles = []types.FileChange{
	{
		Path: "my-react-portlet/src/main/java/com/example/reactportlet/ReactPortlet.java",
		Content: `package com.example.reactportlet;

import com.liferay.portal.kernel.portlet.bridges.mvc.MVCPortlet;

import javax.portlet.Portlet;

import org.osgi.service.component.annotations.Component;

@Component(
	immediate = true,
	property = {
		"com.liferay.portlet.display-category=category.sample",
		"javax.portlet.display-name=My React Portlet",
		"javax.portlet.init-param.view-template=/view.jsp",
		"javax.portlet.name=com_example_reactportlet_ReactPortlet",
		"javax.portlet.resource-bundle=content.Language"
	},
	service = Portlet.class
)
public class ReactPortlet extends MVCPortlet {
}
`,
	},
	{
		Path:    "my-react-portlet/src/main/resources/content/Language.properties",
		Content: "javax.portlet.title.com_example_reactportlet_ReactPortlet=My React Portlet\n",
	},
	{
		Path: "my-react-portlet/src/main/resources/META-INF/resources/css/main.css",
		Content: `.react-portlet-container {
	padding: 20px;
}
`,
	},
	{
		Path: "my-react-portlet/src/main/resources/META-INF/resources/js/App.js",
		Content: `import React from 'react';

export default function App() {
  return (
    <div className="react-portlet-container">
      <h1>Hello from My React Portlet!</h1>
      <p>This component is rendered by React within a Liferay portlet.</p>
    </div>
  );
}
`,
	},
	{
		Path: "my-react-portlet/src/main/resources/META-INF/resources/js/main.js",
		Content: `import React from 'react';
import ReactDOM from 'react-dom';

import App from './App';

export default function main({portletElementId}) {
    const portletElement = document.getElementById(portletElementId);

    ReactDOM.render(<App />, portletElement);
}
`,
	},
	{
		Path: "my-react-portlet/src/main/resources/META-INF/resources/init.jsp",
		Content: `<%@ taglib uri="http://java.sun.com/portlet_2_0" prefix="portlet" %>

<portlet:defineObjects />
`,
	},
	{
		Path: "my-react-portlet/src/main/resources/META-INF/resources/view.jsp",
		Content: `<%@ include file="/init.jsp" %>

<div id="<portlet:namespace />-root"></div>
`,
	},
	{
		Path: "my-react-portlet/package.json",
		Content: `{
  "name": "my-react-portlet",
  "version": "1.0.0",
  "main": "js/main.js",
  "dependencies": {
    "react": "^16.14.0",
    "react-dom": "^16.14.0"
  }
}
`,
	},
	{
		Path: "my-react-portlet/bnd.bnd",
		Content: `Bundle-Name: My React Portlet
Bundle-SymbolicName: com.example.reactportlet
Bundle-Version: 1.0.0
`,
	},
	{
		Path: "my-react-portlet/build.gradle",
		Content: `dependencies {
	compileOnly group: "com.liferay.portal", name: "com.liferay.portal.kernel"
	compileOnly group: "javax.portlet", name: "portlet-api"
	compileOnly group: "org.osgi", name: "osgi.cmpn"
}
`,
	},
}

var reactFiles = []types.FileChange{
	{
		Path: "MyReactProject/public/index.html",
		Content: `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>My React Project</title>
  </head>
  <body>
    <div id="root"></div>
  </body>
</html>
`,
	},
	{
		Path: "MyReactProject/src/App.js",
		Content: `import React from 'react';
import Header from './components/Header';

function App() {
  return (
    <div className="App">
      <Header title="Welcome to your React project" />
    </div>
  );
}

export default App;
`,
	},
	{
		Path: "MyReactProject/src/components/Header.js",
		Content: `import React from 'react';

function Header({ title }) {
  return <h1>{title}</h1>;
}

export default Header;
`,
	},
	{
		Path: "MyReactProject/src/index.css",
		Content: `body {
  margin: 0;
  font-family: sans-serif;
}
`,
	},
	{
		Path: "MyReactProject/src/index.js",
		Content: `import React from 'react';
import ReactDOM from 'react-dom/client';
import './index.css';
import App from './App';

const root = ReactDOM.createRoot(document.getElementById('root'));
root.render(<App />);
`,
	},
	{
		Path: "MyReactProject/package.json",
		Content: `{
  "name": "my-react-project",
  "version": "0.1.0",
  "private": true,
  "dependencies": {
    "react": "^18.2.0",
    "react-dom": "^18.2.0",
    "react-scripts": "5.0.1"
  },
  "scripts": {
    "start": "react-scripts start",
    "build": "react-scripts build"
  }
}
`,
	},
	{
		Path: "MyReactProject/README.md",
		Content: `# My React Project

- Edit files in the IDE or ask Sasha to write code for you.
- Sasha will generate the code in the chat. You can then ask her to apply it directly to the files in the IDE.
`,
	},
}
